// Package guest implements the ledger for guest mode: every guest's sessions,
// transactions and settings live in a single JSON document.
package guest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/404twillCODE/Casino-Session-Tracker/internal/apperrors"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/core/domain"
	portsrepo "github.com/404twillCODE/Casino-Session-Tracker/internal/core/ports/repositories"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/middleware"
)

// StorageKeyPrefix prefixes every guest document key.
const StorageKeyPrefix = "sessionstack_guest:"

type sessionDoc struct {
	ID          string     `json:"id"`
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at"`
	CasinoName  *string    `json:"casino_name"`
	Notes       *string    `json:"notes"`
	BudgetCents *int64     `json:"budget_cents"`
	CreatedAt   time.Time  `json:"created_at"`
}

type transactionDoc struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	Type        string    `json:"type"`
	AmountCents int64     `json:"amount_cents"`
	OccurredAt  time.Time `json:"occurred_at"`
	Note        *string   `json:"note"`
	Game        *string   `json:"game"`
	CreatedAt   time.Time `json:"created_at"`
}

type settingsDoc struct {
	GlobalBudgetCents *int64    `json:"global_budget_cents"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type document struct {
	Sessions     []sessionDoc     `json:"sessions"`
	Transactions []transactionDoc `json:"transactions"`
	Settings     *settingsDoc     `json:"settings,omitempty"`
}

// Store is a LedgerStore over a DocumentStorage. Every operation loads the
// owner's whole document, and mutations write it back, under one mutex.
type Store struct {
	mu      sync.Mutex
	storage DocumentStorage
}

// NewStore creates a guest ledger store persisting to storage.
func NewStore(storage DocumentStorage) *Store {
	return &Store{storage: storage}
}

var _ portsrepo.LedgerStore = (*Store)(nil)

// StorageKey returns the document key for an owner.
func StorageKey(ownerID string) string {
	return StorageKeyPrefix + strings.TrimPrefix(ownerID, domain.GuestOwnerPrefix)
}

func (s *Store) FindSessionByID(ctx context.Context, ownerID, sessionID string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	i := doc.sessionIndex(sessionID)
	if i < 0 {
		return nil, fmt.Errorf("session %s: %w", sessionID, apperrors.ErrNotFound)
	}
	session := doc.Sessions[i].toDomain(ownerID)
	return &session, nil
}

func (s *Store) ListSessionsByOwner(ctx context.Context, ownerID string) ([]domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	sessions := make([]domain.Session, len(doc.Sessions))
	for i, sd := range doc.Sessions {
		sessions[i] = sd.toDomain(ownerID)
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.After(sessions[j].StartedAt)
	})
	return sessions, nil
}

func (s *Store) SaveSession(ctx context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx, session.OwnerID)
	if err != nil {
		return err
	}
	if doc.sessionIndex(session.SessionID) >= 0 {
		return fmt.Errorf("session %s: %w", session.SessionID, apperrors.ErrDuplicate)
	}
	doc.Sessions = append([]sessionDoc{fromSession(session)}, doc.Sessions...)
	return s.save(ctx, session.OwnerID, doc)
}

// UpdateSession stores the mutable fields of a session. An end timestamp
// already on record is kept.
func (s *Store) UpdateSession(ctx context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx, session.OwnerID)
	if err != nil {
		return err
	}
	i := doc.sessionIndex(session.SessionID)
	if i < 0 {
		return fmt.Errorf("session %s: %w", session.SessionID, apperrors.ErrNotFound)
	}

	stored := &doc.Sessions[i]
	if stored.EndedAt == nil && session.EndedAt != nil {
		endedAt := *session.EndedAt
		stored.EndedAt = &endedAt
	}
	stored.CasinoName = session.CasinoName
	stored.Notes = session.Notes
	stored.BudgetCents = session.BudgetCents
	return s.save(ctx, session.OwnerID, doc)
}

func (s *Store) ListTransactionsBySession(ctx context.Context, ownerID, sessionID string) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	txns := []domain.Transaction{}
	for _, td := range doc.Transactions {
		if td.SessionID == sessionID {
			txns = append(txns, td.toDomain(ownerID))
		}
	}
	sortTransactions(txns)
	return txns, nil
}

func (s *Store) ListTransactionsByOwner(ctx context.Context, ownerID string) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	txns := make([]domain.Transaction, len(doc.Transactions))
	for i, td := range doc.Transactions {
		txns[i] = td.toDomain(ownerID)
	}
	sortTransactions(txns)
	return txns, nil
}

func (s *Store) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	if err := txn.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx, txn.OwnerID)
	if err != nil {
		return err
	}
	i := doc.sessionIndex(txn.SessionID)
	if i < 0 {
		return fmt.Errorf("session %s: %w", txn.SessionID, apperrors.ErrNotFound)
	}
	if doc.Sessions[i].EndedAt != nil {
		return fmt.Errorf("session %s: %w", txn.SessionID, apperrors.ErrSessionEnded)
	}
	doc.Transactions = append([]transactionDoc{fromTransaction(txn)}, doc.Transactions...)
	return s.save(ctx, txn.OwnerID, doc)
}

func (s *Store) FindSettings(ctx context.Context, ownerID string) (*domain.UserSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if doc.Settings == nil {
		return nil, fmt.Errorf("settings: %w", apperrors.ErrNotFound)
	}
	return &domain.UserSettings{
		OwnerID:           ownerID,
		GlobalBudgetCents: doc.Settings.GlobalBudgetCents,
		UpdatedAt:         doc.Settings.UpdatedAt,
	}, nil
}

func (s *Store) SaveSettings(ctx context.Context, settings domain.UserSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx, settings.OwnerID)
	if err != nil {
		return err
	}
	doc.Settings = &settingsDoc{
		GlobalBudgetCents: settings.GlobalBudgetCents,
		UpdatedAt:         settings.UpdatedAt,
	}
	return s.save(ctx, settings.OwnerID, doc)
}

func (s *Store) DeleteSettings(ctx context.Context, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx, ownerID)
	if err != nil {
		return err
	}
	if doc.Settings == nil {
		return nil
	}
	doc.Settings = nil
	return s.save(ctx, ownerID, doc)
}

// DeleteOwnerData clears the owner's whole document.
func (s *Store) DeleteOwnerData(ctx context.Context, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.RemoveItem(ctx, StorageKey(ownerID)); err != nil {
		return fmt.Errorf("failed to clear guest document: %w", err)
	}
	return nil
}

// load reads the owner's document. A missing or unreadable document is
// treated as empty.
func (s *Store) load(ctx context.Context, ownerID string) (*document, error) {
	key := StorageKey(ownerID)
	raw, found, err := s.storage.GetItem(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read guest document: %w", err)
	}
	doc := &document{}
	if !found || len(raw) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(raw, doc); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Discarding unreadable guest document",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return &document{}, nil
	}
	return doc, nil
}

func (s *Store) save(ctx context.Context, ownerID string, doc *document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode guest document: %w", err)
	}
	if err := s.storage.SetItem(ctx, StorageKey(ownerID), raw); err != nil {
		return fmt.Errorf("failed to write guest document: %w", err)
	}
	return nil
}

func (d *document) sessionIndex(sessionID string) int {
	for i := range d.Sessions {
		if d.Sessions[i].ID == sessionID {
			return i
		}
	}
	return -1
}

func sortTransactions(txns []domain.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].OccurredAt.After(txns[j].OccurredAt)
	})
}

func fromSession(s domain.Session) sessionDoc {
	return sessionDoc{
		ID:          s.SessionID,
		StartedAt:   s.StartedAt,
		EndedAt:     s.EndedAt,
		CasinoName:  s.CasinoName,
		Notes:       s.Notes,
		BudgetCents: s.BudgetCents,
		CreatedAt:   s.CreatedAt,
	}
}

func (sd sessionDoc) toDomain(ownerID string) domain.Session {
	return domain.Session{
		SessionID:   sd.ID,
		OwnerID:     ownerID,
		StartedAt:   sd.StartedAt,
		EndedAt:     sd.EndedAt,
		CasinoName:  sd.CasinoName,
		Notes:       sd.Notes,
		BudgetCents: sd.BudgetCents,
		CreatedAt:   sd.CreatedAt,
	}
}

func fromTransaction(t domain.Transaction) transactionDoc {
	return transactionDoc{
		ID:          t.TransactionID,
		SessionID:   t.SessionID,
		Type:        string(t.Type),
		AmountCents: t.AmountCents,
		OccurredAt:  t.OccurredAt,
		Note:        t.Note,
		Game:        t.Game,
		CreatedAt:   t.CreatedAt,
	}
}

func (td transactionDoc) toDomain(ownerID string) domain.Transaction {
	return domain.Transaction{
		TransactionID: td.ID,
		SessionID:     td.SessionID,
		OwnerID:       ownerID,
		Type:          domain.TransactionType(td.Type),
		AmountCents:   td.AmountCents,
		OccurredAt:    td.OccurredAt,
		Note:          td.Note,
		Game:          td.Game,
		CreatedAt:     td.CreatedAt,
	}
}
