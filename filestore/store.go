// Package filestore implements the repository interfaces on top of a
// single JSON document persisted to disk after every mutation.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Store owns the in-memory document and its on-disk snapshot. All access
// goes through mu; mutations must call save before releasing the lock so
// the disk copy never runs ahead of memory.
type Store struct {
	path string

	mu  sync.RWMutex
	doc document
}

type document struct {
	Users     []userRecord   `json:"users"`
	Courts    []courtRecord  `json:"courts"`
	Teams     []teamRecord   `json:"teams"`
	Games     []gameRecord   `json:"games"`
	Sequences map[string]int `json:"sequences"`
}

type userRecord struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"password_hash"`
}

type courtRecord struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type teamRecord struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MemberIDs   []int     `json:"member_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type gameRecord struct {
	ID         int       `json:"id"`
	DateTime   time.Time `json:"date_time"`
	Status     string    `json:"status"`
	CourtID    int       `json:"court_id"`
	HostID     int       `json:"host_id"`
	HomeTeamID *int      `json:"home_team_id"`
	AwayTeamID *int      `json:"away_team_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Open loads the document at path, or starts with an empty one if the
// file does not exist yet. A corrupt file is an error, not a reset.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.doc = document{Sequences: make(map[string]int)}
		if err := s.save(); err != nil {
			return nil, fmt.Errorf("failed to create store file: %w", err)
		}
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	if err := json.Unmarshal(data, &s.doc); err != nil {
		return nil, fmt.Errorf("failed to parse store file %s: %w", path, err)
	}
	if s.doc.Sequences == nil {
		s.doc.Sequences = make(map[string]int)
	}
	return s, nil
}

// Close flushes the document one last time. Durability does not depend on
// it: every mutation already saved.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes the whole document atomically (temp file + rename).
// Callers must hold the write lock.
func (s *Store) save() error {
	data, err := json.MarshalIndent(&s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store document: %w", err)
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store document: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace store document: %w", err)
	}
	return nil
}

// nextID hands out monotonically increasing ids per collection. The
// counter is persisted with the document, so deleting the max-id row
// never causes id reuse. Legacy documents without counters start from
// their current maximum. Callers must hold the write lock.
func (s *Store) nextID(kind string, maxExisting int) int {
	n := s.doc.Sequences[kind]
	if n < maxExisting {
		n = maxExisting
	}
	n++
	s.doc.Sequences[kind] = n
	return n
}

func maxUserID(users []userRecord) int {
	m := 0
	for _, u := range users {
		if u.ID > m {
			m = u.ID
		}
	}
	return m
}

func maxCourtID(courts []courtRecord) int {
	m := 0
	for _, c := range courts {
		if c.ID > m {
			m = c.ID
		}
	}
	return m
}

func maxTeamID(teams []teamRecord) int {
	m := 0
	for _, t := range teams {
		if t.ID > m {
			m = t.ID
		}
	}
	return m
}

func maxGameID(games []gameRecord) int {
	m := 0
	for _, g := range games {
		if g.ID > m {
			m = g.ID
		}
	}
	return m
}
