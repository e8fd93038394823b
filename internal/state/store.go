package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rentbook/rentbook/internal/models"
	"github.com/sirupsen/logrus"
)

// AppState is the locally persisted client state: which profile is selected
// and the last computed balance snapshot. The snapshot is display-only and
// goes stale as soon as a payment lands or the day rolls over.
type AppState struct {
	ActiveProfileID   string                 `json:"activeProfileId,omitempty"`
	ActiveProfileName string                 `json:"activeProfileName,omitempty"`
	CachedBalance     *models.BalanceSummary `json:"cachedBalance,omitempty"`
}

// Store persists AppState to a single JSON document. Writes go through a
// temp file, fsync and rename so a crash never leaves a torn state file.
// The cached balance slot is last-writer-wins: concurrent recomputes may
// race and the later completion overwrites the earlier one.
type Store struct {
	path string
	log  *logrus.Logger

	mu    sync.Mutex
	state AppState
}

// NewStore initializes a new state store backed by the given file
func NewStore(path string, log *logrus.Logger) *Store {
	return &Store{path: path, log: log}
}

// Load reads the state file into memory. A missing file is not an error;
// the store starts empty.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.state = AppState{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read state file: %w", err)
	}

	if err := json.Unmarshal(data, &s.state); err != nil {
		return fmt.Errorf("failed to parse state file: %w", err)
	}

	s.log.Debugf("Loaded app state from %s", s.path)
	return nil
}

// SetActiveProfile switches the selected profile. The cached balance belongs
// to the previous profile, so it is cleared in the same write.
func (s *Store) SetActiveProfile(id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.ActiveProfileID = id
	s.state.ActiveProfileName = name
	s.state.CachedBalance = nil
	return s.persistLocked()
}

// ActiveProfile returns the selected profile's id and name. Both are empty
// when no profile has been selected yet.
func (s *Store) ActiveProfile() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ActiveProfileID, s.state.ActiveProfileName
}

// SetBalance overwrites the cached balance snapshot.
func (s *Store) SetBalance(b *models.BalanceSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.CachedBalance = b
	return s.persistLocked()
}

// CachedBalance returns the last stored snapshot, or nil if none exists.
func (s *Store) CachedBalance() *models.BalanceSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.CachedBalance == nil {
		return nil
	}
	copied := *s.state.CachedBalance
	return &copied
}

// InvalidateBalance clears the cached snapshot.
func (s *Store) InvalidateBalance() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.CachedBalance == nil {
		return nil
	}
	s.state.CachedBalance = nil
	return s.persistLocked()
}

// persistLocked writes the current state atomically. Callers must hold mu.
func (s *Store) persistLocked() error {
	data, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create state dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open temp state file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write temp state file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to sync temp state file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp state file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
