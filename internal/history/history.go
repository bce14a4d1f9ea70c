// Package history persists per-user conversation turns in a JSON file.
// Every turn is written; reads return only the most recent window.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog/log"

	"ragbot/internal/models"
)

const DefaultMaxTurns = 5

// Store is a full-file read-modify-write history keyed by user identifier.
// An in-process mutex plus an advisory file lock serialise access so
// concurrent appends cannot interleave partial writes.
type Store struct {
	path string
	mu   sync.Mutex
	fl   *flock.Flock
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
		fl:   flock.New(path + ".lock"),
	}
}

// Load returns at most maxTurns of the user's history, most recent last.
// A user (or file) with no history yields an empty sequence.
func (s *Store) Load(userID string, maxTurns int) ([]models.Turn, error) {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fl.Lock(); err != nil {
		return nil, fmt.Errorf("failed to lock history file: %w", err)
	}
	defer s.fl.Unlock()

	all := s.read()
	turns := all[userID]
	if len(turns) > maxTurns {
		turns = turns[len(turns)-maxTurns:]
	}
	return turns, nil
}

// Append records one exchange for the user, durably, before returning.
func (s *Store) Append(userID, userMessage, botResponse string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fl.Lock(); err != nil {
		return fmt.Errorf("failed to lock history file: %w", err)
	}
	defer s.fl.Unlock()

	all := s.read()
	all[userID] = append(all[userID], models.Turn{User: userMessage, Bot: botResponse})
	return s.write(all)
}

// read loads the whole history file. A corrupt file is treated as empty
// rather than poisoning every request from then on.
func (s *Store) read() map[string][]models.Turn {
	history := map[string][]models.Turn{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", s.path).Msg("Failed to read history file, starting empty")
		}
		return history
	}
	if err := json.Unmarshal(data, &history); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("History file is corrupt, resetting")
		return map[string][]models.Turn{}
	}
	return history
}

// write rewrites the whole file via a temp file and rename so a crash
// mid-write never leaves a truncated store behind.
func (s *Store) write(all map[string][]models.Turn) error {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".history-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp history file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace history file: %w", err)
	}
	return nil
}
