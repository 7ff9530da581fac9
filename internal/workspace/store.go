package workspace

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps workspaces in memory, keyed by id. Nothing is persisted.
type Store struct {
	mu    sync.Mutex
	items map[string]*storeEntry
	now   func() time.Time
}

type storeEntry struct {
	ws       *Workspace
	lastSeen time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock sets the time source used for idle tracking.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		items: make(map[string]*storeEntry),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a new empty workspace.
func (s *Store) Create() *Workspace {
	ws := New()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[ws.ID()] = &storeEntry{ws: ws, lastSeen: s.now()}
	return ws
}

// Get returns the workspace for id and marks it as seen.
// Ids that are not UUIDs are rejected without a lookup.
func (s *Store) Get(id string) (*Workspace, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastSeen = s.now()
	return e.ws, nil
}

// GetOrCreate returns the workspace for id, or a new one if id is unknown.
func (s *Store) GetOrCreate(id string) *Workspace {
	if ws, err := s.Get(id); err == nil {
		return ws
	}
	return s.Create()
}

// Delete removes the workspace and cancels its generation, if any.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	e, ok := s.items[id]
	delete(s.items, id)
	s.mu.Unlock()

	if ok {
		e.ws.Close()
	}
}

// Sweep evicts workspaces not seen for longer than maxIdle and returns how
// many were removed.
func (s *Store) Sweep(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	var evicted []*Workspace
	for id, e := range s.items {
		if e.lastSeen.Before(cutoff) {
			evicted = append(evicted, e.ws)
			delete(s.items, id)
		}
	}
	s.mu.Unlock()

	for _, ws := range evicted {
		ws.Close()
	}
	return len(evicted)
}

// Len returns the number of live workspaces.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
