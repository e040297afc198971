package catalog

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var rackPattern = regexp.MustCompile(`^[A-H][0-9]{1,2}$`)

// Store holds catalogued entries in memory behind a mutex. Persistence is the
// host deployment's concern; the store only promises consistent reads.
type Store struct {
	mu      sync.Mutex
	entries map[string]Entry
	order   []string
}

// NewStore returns an empty catalog store.
func NewStore() *Store {
	return &Store{entries: make(map[string]Entry)}
}

// Add validates a definition and files it under a fresh identifier.
func (s *Store) Add(def EntryDefinition) (Entry, error) {
	rack := strings.ToUpper(strings.TrimSpace(def.Rack))
	if !rackPattern.MatchString(rack) {
		return Entry{}, fmt.Errorf("invalid rack coordinate %q", def.Rack)
	}
	if strings.TrimSpace(def.TipType) == "" {
		return Entry{}, fmt.Errorf("tip type is required")
	}
	if def.VolumeUL <= 0 {
		return Entry{}, fmt.Errorf("volume must be positive, got %v", def.VolumeUL)
	}

	entry := Entry{
		ID:        uuid.NewString(),
		Rack:      rack,
		TipType:   strings.TrimSpace(def.TipType),
		VolumeUL:  def.VolumeUL,
		Filtered:  def.Filtered,
		Notes:     strings.TrimSpace(def.Notes),
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.entries[entry.ID] = entry
	s.order = append(s.order, entry.ID)
	s.mu.Unlock()

	return entry, nil
}

// Get looks up an entry by identifier.
func (s *Store) Get(id string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	return entry, ok
}

// Remove deletes an entry and reports whether it existed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return false
	}
	delete(s.entries, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// List returns all entries in insertion order.
func (s *Store) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]Entry, 0, len(s.order))
	for _, id := range s.order {
		if entry, ok := s.entries[id]; ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Count reports the number of catalogued entries.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
