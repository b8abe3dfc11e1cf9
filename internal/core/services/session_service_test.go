package services_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/404twillCODE/Casino-Session-Tracker/internal/adapters/guest"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/apperrors"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/core/domain"
	portsrepo "github.com/404twillCODE/Casino-Session-Tracker/internal/core/ports/repositories"
	portssvc "github.com/404twillCODE/Casino-Session-Tracker/internal/core/ports/services"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/core/services"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/dto"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// tickingClock returns now and then advances it by step.
type tickingClock struct {
	now  time.Time
	step time.Duration
}

func (c *tickingClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// sequentialIDs hands out predictable identifiers.
type sequentialIDs struct {
	n int
}

func (g *sequentialIDs) Next() string {
	g.n++
	return fmt.Sprintf("id-%03d", g.n)
}

// failingStore is a LedgerStore whose listing calls fail.
type failingStore struct {
	portsrepo.LedgerStore
	err error
}

func (f failingStore) ListSessionsByOwner(context.Context, string) ([]domain.Session, error) {
	return nil, f.err
}

func (f failingStore) ListTransactionsByOwner(context.Context, string) ([]domain.Transaction, error) {
	return nil, f.err
}

type SessionServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	clock   *tickingClock
	ids     *sequentialIDs
	store   *guest.Store
	service portssvc.SessionSvcFacade
	ownerID string
}

func (suite *SessionServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.clock = &tickingClock{now: time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC), step: time.Minute}
	suite.ids = &sequentialIDs{}
	suite.store = guest.NewStore(guest.NewMemoryStorage())
	suite.service = services.NewSessionService(suite.store,
		services.WithClock(suite.clock.Now),
		services.WithIDGenerator(suite.ids.Next),
	)
	suite.ownerID = domain.GuestOwnerPrefix + uuid.NewString()
}

func (suite *SessionServiceTestSuite) startSession(casino *string) *domain.Session {
	session, err := suite.service.CreateSession(suite.ctx, suite.ownerID, dto.CreateSessionRequest{CasinoName: casino})
	suite.Require().NoError(err)
	return session
}

func (suite *SessionServiceTestSuite) record(sessionID string, typ domain.TransactionType, cents int64) {
	_, err := suite.service.RecordTransaction(suite.ctx, suite.ownerID, sessionID, dto.RecordTransactionRequest{
		Type:        string(typ),
		AmountCents: &cents,
	})
	suite.Require().NoError(err)
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

// --- CreateSession ---
func (suite *SessionServiceTestSuite) TestCreateSession() {
	session := suite.startSession(strPtr("  Bellagio  "))

	suite.Equal("id-001", session.SessionID)
	suite.Equal(suite.ownerID, session.OwnerID)
	suite.True(session.IsOpen())
	suite.Require().NotNil(session.CasinoName)
	suite.Equal("Bellagio", *session.CasinoName)

	stored, err := suite.store.FindSessionByID(suite.ctx, suite.ownerID, session.SessionID)
	suite.Require().NoError(err)
	suite.Equal(session.StartedAt, stored.StartedAt)
}

func (suite *SessionServiceTestSuite) TestCreateSession_BlankCasinoIsDropped() {
	session := suite.startSession(strPtr("   "))

	suite.Nil(session.CasinoName)
}

// --- RecordTransaction / GetSessionDetail ---
func (suite *SessionServiceTestSuite) TestSessionDetail_NetAndRunningNet() {
	session := suite.startSession(nil)
	suite.record(session.SessionID, domain.CashIn, 5000)
	suite.record(session.SessionID, domain.CashOut, 3000)

	detail, err := suite.service.GetSessionDetail(suite.ctx, suite.ownerID, session.SessionID)

	suite.Require().NoError(err)
	suite.Require().Len(detail.Transactions, 2)
	suite.Equal(domain.CashOut, detail.Transactions[0].Type)
	suite.Equal(domain.CashIn, detail.Transactions[1].Type)
	suite.Equal(domain.Totals{InCents: 5000, OutCents: 3000, NetCents: -2000}, detail.Totals)
	suite.Equal([]int64{-2000, -5000}, detail.RunningNetCents)
	suite.Nil(detail.BudgetRemainingCents)
}

func (suite *SessionServiceTestSuite) TestSessionDetail_EqualTimestampsStayPaired() {
	session := suite.startSession(nil)
	suite.clock.step = 0
	suite.record(session.SessionID, domain.CashIn, 100)
	suite.record(session.SessionID, domain.CashOut, 300)

	detail, err := suite.service.GetSessionDetail(suite.ctx, suite.ownerID, session.SessionID)

	suite.Require().NoError(err)
	suite.Require().Len(detail.Transactions, 2)
	suite.Require().Len(detail.RunningNetCents, 2)
	suite.Equal(detail.Totals.NetCents, detail.RunningNetCents[0])
	suite.Equal(detail.Transactions[1].SignedCents(), detail.RunningNetCents[1])
	suite.Equal(detail.RunningNetCents[1]+detail.Transactions[0].SignedCents(), detail.RunningNetCents[0])

	// The store lists the later write first, so it is accumulated first.
	suite.Equal([]int64{200, 300}, detail.RunningNetCents)
	suite.Equal(domain.CashIn, detail.Transactions[0].Type)
	suite.Equal(domain.CashOut, detail.Transactions[1].Type)
}

func (suite *SessionServiceTestSuite) TestSessionDetail_BudgetRemainingFloorsAtZero() {
	session := suite.startSession(nil)
	_, err := suite.service.UpdateBudget(suite.ctx, suite.ownerID, session.SessionID, dto.UpdateBudgetRequest{BudgetCents: int64Ptr(10000)})
	suite.Require().NoError(err)
	suite.record(session.SessionID, domain.CashIn, 15000)
	suite.record(session.SessionID, domain.CashOut, 2000)

	detail, err := suite.service.GetSessionDetail(suite.ctx, suite.ownerID, session.SessionID)

	suite.Require().NoError(err)
	suite.Require().NotNil(detail.BudgetRemainingCents)
	suite.Equal(int64(0), *detail.BudgetRemainingCents)
}

func (suite *SessionServiceTestSuite) TestSessionDetail_BudgetRemainingPartial() {
	session := suite.startSession(nil)
	_, err := suite.service.UpdateBudget(suite.ctx, suite.ownerID, session.SessionID, dto.UpdateBudgetRequest{Budget: strPtr("$100")})
	suite.Require().NoError(err)
	suite.record(session.SessionID, domain.CashIn, 6000)
	suite.record(session.SessionID, domain.CashOut, 2500)

	detail, err := suite.service.GetSessionDetail(suite.ctx, suite.ownerID, session.SessionID)

	suite.Require().NoError(err)
	suite.Require().NotNil(detail.BudgetRemainingCents)
	suite.Equal(int64(6500), *detail.BudgetRemainingCents)
}

func (suite *SessionServiceTestSuite) TestSessionDetail_NotFound() {
	detail, err := suite.service.GetSessionDetail(suite.ctx, suite.ownerID, "missing")

	suite.Nil(detail)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *SessionServiceTestSuite) TestRecordTransaction_FromDollarString() {
	session := suite.startSession(nil)

	txn, err := suite.service.RecordTransaction(suite.ctx, suite.ownerID, session.SessionID, dto.RecordTransactionRequest{
		Type:   string(domain.CashIn),
		Amount: "$20.50",
		Note:   strPtr("  first buy-in "),
		Game:   strPtr(""),
	})

	suite.Require().NoError(err)
	suite.Equal(int64(2050), txn.AmountCents)
	suite.Require().NotNil(txn.Note)
	suite.Equal("first buy-in", *txn.Note)
	suite.Nil(txn.Game)
}

func (suite *SessionServiceTestSuite) TestRecordTransaction_Rejected() {
	session := suite.startSession(nil)

	tests := []struct {
		name string
		req  dto.RecordTransactionRequest
	}{
		{name: "no amount", req: dto.RecordTransactionRequest{Type: string(domain.CashIn)}},
		{name: "garbage amount", req: dto.RecordTransactionRequest{Type: string(domain.CashIn), Amount: "lots"}},
		{name: "zero cents", req: dto.RecordTransactionRequest{Type: string(domain.CashIn), AmountCents: int64Ptr(0)}},
		{name: "negative cents", req: dto.RecordTransactionRequest{Type: string(domain.CashOut), AmountCents: int64Ptr(-500)}},
		{name: "unknown type", req: dto.RecordTransactionRequest{Type: "refund", AmountCents: int64Ptr(500)}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			txn, err := suite.service.RecordTransaction(suite.ctx, suite.ownerID, session.SessionID, tt.req)

			suite.Nil(txn)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}

	txns, err := suite.store.ListTransactionsBySession(suite.ctx, suite.ownerID, session.SessionID)
	suite.Require().NoError(err)
	suite.Empty(txns)
}

func (suite *SessionServiceTestSuite) TestRecordTransaction_MissingSession() {
	txn, err := suite.service.RecordTransaction(suite.ctx, suite.ownerID, "missing", dto.RecordTransactionRequest{
		Type:        string(domain.CashIn),
		AmountCents: int64Ptr(500),
	})

	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- EndSession ---
func (suite *SessionServiceTestSuite) TestEndSession_BlocksFurtherTransactions() {
	session := suite.startSession(nil)
	suite.record(session.SessionID, domain.CashIn, 2000)

	ended, err := suite.service.EndSession(suite.ctx, suite.ownerID, session.SessionID)
	suite.Require().NoError(err)
	suite.False(ended.IsOpen())

	txn, err := suite.service.RecordTransaction(suite.ctx, suite.ownerID, session.SessionID, dto.RecordTransactionRequest{
		Type:        string(domain.CashOut),
		AmountCents: int64Ptr(1000),
	})
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrSessionEnded)

	detail, err := suite.service.GetSessionDetail(suite.ctx, suite.ownerID, session.SessionID)
	suite.Require().NoError(err)
	suite.Len(detail.Transactions, 1)
}

func (suite *SessionServiceTestSuite) TestLifecycleEventsLoggedOnce() {
	var buf bytes.Buffer
	suite.ctx = middleware.WithLogger(suite.ctx, slog.New(slog.NewTextHandler(&buf, nil)))

	session := suite.startSession(nil)
	suite.record(session.SessionID, domain.CashIn, 1000)
	_, err := suite.service.EndSession(suite.ctx, suite.ownerID, session.SessionID)
	suite.Require().NoError(err)

	for _, msg := range []string{"Session started", "Transaction recorded", "Session ended"} {
		suite.Equal(1, strings.Count(buf.String(), "msg=\""+msg+"\""), msg)
	}
}

func (suite *SessionServiceTestSuite) TestEndSession_Twice() {
	session := suite.startSession(nil)
	first, err := suite.service.EndSession(suite.ctx, suite.ownerID, session.SessionID)
	suite.Require().NoError(err)

	second, err := suite.service.EndSession(suite.ctx, suite.ownerID, session.SessionID)

	suite.Nil(second)
	suite.ErrorIs(err, apperrors.ErrSessionEnded)
	stored, err := suite.store.FindSessionByID(suite.ctx, suite.ownerID, session.SessionID)
	suite.Require().NoError(err)
	suite.Require().NotNil(stored.EndedAt)
	suite.True(first.EndedAt.Equal(*stored.EndedAt))
}

// --- UpdateNotes / UpdateBudget ---
func (suite *SessionServiceTestSuite) TestUpdateNotes() {
	session := suite.startSession(nil)

	updated, err := suite.service.UpdateNotes(suite.ctx, suite.ownerID, session.SessionID, dto.UpdateNotesRequest{Notes: strPtr("hot table")})
	suite.Require().NoError(err)
	suite.Require().NotNil(updated.Notes)
	suite.Equal("hot table", *updated.Notes)

	cleared, err := suite.service.UpdateNotes(suite.ctx, suite.ownerID, session.SessionID, dto.UpdateNotesRequest{Notes: strPtr("  ")})
	suite.Require().NoError(err)
	suite.Nil(cleared.Notes)
}

func (suite *SessionServiceTestSuite) TestUpdateNotes_AllowedAfterEnd() {
	session := suite.startSession(nil)
	_, err := suite.service.EndSession(suite.ctx, suite.ownerID, session.SessionID)
	suite.Require().NoError(err)

	updated, err := suite.service.UpdateNotes(suite.ctx, suite.ownerID, session.SessionID, dto.UpdateNotesRequest{Notes: strPtr("went home early")})

	suite.Require().NoError(err)
	suite.Equal("went home early", *updated.Notes)
}

func (suite *SessionServiceTestSuite) TestUpdateBudget() {
	session := suite.startSession(nil)

	tests := []struct {
		name    string
		req     dto.UpdateBudgetRequest
		want    *int64
		wantErr error
	}{
		{name: "cents", req: dto.UpdateBudgetRequest{BudgetCents: int64Ptr(25000)}, want: int64Ptr(25000)},
		{name: "dollar string", req: dto.UpdateBudgetRequest{Budget: strPtr("$1,000")}, want: int64Ptr(100000)},
		{name: "cleared", req: dto.UpdateBudgetRequest{Budget: strPtr(" ")}},
		{name: "zero", req: dto.UpdateBudgetRequest{BudgetCents: int64Ptr(0)}, wantErr: apperrors.ErrValidation},
		{name: "unparseable", req: dto.UpdateBudgetRequest{Budget: strPtr("a lot")}, wantErr: apperrors.ErrValidation},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			updated, err := suite.service.UpdateBudget(suite.ctx, suite.ownerID, session.SessionID, tt.req)

			if tt.wantErr != nil {
				suite.ErrorIs(err, tt.wantErr)
				suite.Nil(updated)
				return
			}
			suite.Require().NoError(err)
			suite.Equal(tt.want, updated.BudgetCents)
		})
	}
}

// --- ListSessions / GetDashboard ---
func (suite *SessionServiceTestSuite) TestListSessions_NewestFirstWithTotals() {
	older := suite.startSession(strPtr("Aria"))
	suite.record(older.SessionID, domain.CashIn, 10000)
	newer := suite.startSession(strPtr("Wynn"))
	suite.record(newer.SessionID, domain.CashOut, 4000)

	sessions, err := suite.service.ListSessions(suite.ctx, suite.ownerID)

	suite.Require().NoError(err)
	suite.Require().Len(sessions, 2)
	suite.Equal(newer.SessionID, sessions[0].SessionID)
	suite.Equal(int64(4000), sessions[0].NetCents)
	suite.Equal(older.SessionID, sessions[1].SessionID)
	suite.Equal(int64(-10000), sessions[1].NetCents)
}

func (suite *SessionServiceTestSuite) TestListSessions_OwnersAreIsolated() {
	suite.startSession(nil)

	sessions, err := suite.service.ListSessions(suite.ctx, domain.GuestOwnerPrefix+uuid.NewString())

	suite.Require().NoError(err)
	suite.Empty(sessions)
}

func (suite *SessionServiceTestSuite) TestGetDashboard_GroupsByLocalDate() {
	suite.clock.now = time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)
	first := suite.startSession(nil)
	suite.record(first.SessionID, domain.CashIn, 3000)
	suite.clock.now = time.Date(2025, 3, 2, 3, 0, 0, 0, time.UTC)
	second := suite.startSession(nil)
	suite.record(second.SessionID, domain.CashOut, 1000)

	utc, err := suite.service.GetDashboard(suite.ctx, suite.ownerID, time.UTC)
	suite.Require().NoError(err)
	suite.Require().Len(utc.Groups, 2)
	suite.Equal("2025-03-02", utc.Groups[0].DateKey)
	suite.Equal("2025-03-01", utc.Groups[1].DateKey)
	suite.Equal(domain.Totals{InCents: 3000, OutCents: 1000, NetCents: -2000}, utc.AllTimeTotals)

	newYork, err := time.LoadLocation("America/New_York")
	suite.Require().NoError(err)
	local, err := suite.service.GetDashboard(suite.ctx, suite.ownerID, newYork)
	suite.Require().NoError(err)
	suite.Require().Len(local.Groups, 1)
	suite.Equal("2025-03-01", local.Groups[0].DateKey)
	suite.Equal("March 1, 2025", local.Groups[0].Label)
	suite.Require().Len(local.Groups[0].Items, 2)
	suite.Equal(second.SessionID, local.Groups[0].Items[0].SessionID)
}

func (suite *SessionServiceTestSuite) TestGetDashboard_Empty() {
	dashboard, err := suite.service.GetDashboard(suite.ctx, suite.ownerID, time.UTC)

	suite.Require().NoError(err)
	suite.Empty(dashboard.Groups)
	suite.Equal(domain.Totals{}, dashboard.AllTimeTotals)
}

func (suite *SessionServiceTestSuite) TestGetDashboard_StoreFailure() {
	svc := services.NewSessionService(failingStore{LedgerStore: suite.store, err: assert.AnError})

	dashboard, err := svc.GetDashboard(suite.ctx, suite.ownerID, time.UTC)

	suite.Nil(dashboard)
	suite.ErrorIs(err, assert.AnError)
}

func TestSessionService(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}
