package guest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DocumentStorage is a key/value store of whole serialized documents,
// shaped like the browser's localStorage.
type DocumentStorage interface {
	// GetItem returns the stored value and whether the key exists.
	GetItem(ctx context.Context, key string) ([]byte, bool, error)
	SetItem(ctx context.Context, key string, value []byte) error
	// RemoveItem deletes the key. Removing a missing key is not an error.
	RemoveItem(ctx context.Context, key string) error
}

// MemoryStorage keeps documents in process memory.
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string][]byte)}
}

func (m *MemoryStorage) GetItem(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryStorage) SetItem(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStorage) RemoveItem(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// ErrInvalidKey is returned by FileStorage for keys that could escape its directory.
var ErrInvalidKey = errors.New("invalid storage key")

// FileStorage keeps one file per key inside a directory.
type FileStorage struct {
	dir string
}

// NewFileStorage creates dir if needed and stores documents in it.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create guest storage dir: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

func (f *FileStorage) GetItem(_ context.Context, key string) ([]byte, bool, error) {
	path, err := f.path(key)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read guest document: %w", err)
	}
	return data, true, nil
}

// SetItem writes to a temp file and renames it over the target so readers
// never observe a partial document.
func (f *FileStorage) SetItem(_ context.Context, key string, value []byte) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp guest document: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write guest document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close guest document: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace guest document: %w", err)
	}
	return nil
}

func (f *FileStorage) RemoveItem(_ context.Context, key string) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove guest document: %w", err)
	}
	return nil
}

func (f *FileStorage) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	name := strings.ReplaceAll(key, ":", "_") + ".json"
	return filepath.Join(f.dir, name), nil
}

var (
	_ DocumentStorage = (*MemoryStorage)(nil)
	_ DocumentStorage = (*FileStorage)(nil)
)
