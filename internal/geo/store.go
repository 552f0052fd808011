package geo

import (
	"sync"
	"time"

	"github.com/agrocampo/api/internal/domain"
)

// LocationStore is the single source of truth for per-user location
// snapshots. Writes are last-writer-wins; a manual override blocks
// automatic updates until cleared.
type LocationStore struct {
	mu        sync.RWMutex
	locations map[string]domain.LocationSnapshot
}

// NewLocationStore creates an empty store.
func NewLocationStore() *LocationStore {
	return &LocationStore{locations: make(map[string]domain.LocationSnapshot)}
}

// Get returns the stored snapshot for a user, if any.
func (s *LocationStore) Get(userID string) (domain.LocationSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	loc, ok := s.locations[userID]
	return loc, ok
}

// SetManual stores an explicit user-entered location. It short-circuits
// all future automatic resolution until Clear is called.
func (s *LocationStore) SetManual(userID, city, state string) domain.LocationSnapshot {
	loc := domain.LocationSnapshot{
		City:        city,
		State:       state,
		IsCustomSet: true,
		ResolvedAt:  time.Now(),
	}
	s.mu.Lock()
	s.locations[userID] = loc
	s.mu.Unlock()
	return loc
}

// SetDetected stores an automatically resolved location unless a manual
// override is in place. Returns the snapshot that is now effective.
func (s *LocationStore) SetDetected(userID, city, state string) domain.LocationSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.locations[userID]; ok && existing.IsCustomSet {
		return existing
	}

	loc := domain.LocationSnapshot{
		City:        city,
		State:       state,
		IsCustomSet: false,
		ResolvedAt:  time.Now(),
	}
	s.locations[userID] = loc
	return loc
}

// Clear removes the stored location, requiring fresh resolution.
func (s *LocationStore) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locations, userID)
}
