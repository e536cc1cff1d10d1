// Package session persists the logged-in user across runs and owns the
// login epoch used to discard responses that race a logout.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/D-ASA-D/TaskManager/internal/model"
)

type Store struct {
	mu       sync.RWMutex
	filePath string
	user     *model.User
	epoch    atomic.Int64
}

func NewStore(filePath string) *Store {
	return &Store{filePath: filePath}
}

// Restore reads the persisted session record, if any. A missing or empty
// file means logged out and is not an error. The session carries no expiry;
// it stays valid until an explicit Clear.
func (s *Store) Restore() (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var record model.SessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	s.user = record.User
	return record.User, nil
}

// Save persists the session after a successful login or registration and
// advances the epoch.
func (s *Store) Save(user *model.User) error {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.epoch.Add(1)

	record := model.SessionRecord{User: user, SavedAt: time.Now()}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Clear removes the persisted session on logout and advances the epoch so
// in-flight requests started under the old session are discarded.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	s.epoch.Add(1)

	if err := os.Remove(s.filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// Current returns the in-memory user, or nil when logged out.
func (s *Store) Current() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Epoch returns the current login generation. It changes on every Save and
// Clear; callers capture it before a request and compare after.
func (s *Store) Epoch() int64 {
	return s.epoch.Load()
}
