// Package hostdata is the deck's scoped data-slice store. Panels
// declare the named slices they depend on and read them through an
// explicitly injected store; nothing reaches into ambient globals.
package hostdata

import "sync"

// Well-known slice names.
const (
	SliceFileTree     = "fileTree"
	SliceGlobalSkills = "globalSkills"
	SliceGlobalAgents = "globalAgents"
)

// Slice is one named data slice with its load state.
type Slice struct {
	Data    any
	Loading bool
	Err     error
	Scope   string
}

// NavContext is the current navigation scope. RepoRoot is empty when
// no repository is loaded.
type NavContext struct {
	RepoRoot string
}

// Store holds named slices behind a lock. Reads return copies; slices
// themselves are treated as immutable values.
type Store struct {
	mu     sync.RWMutex
	slices map[string]Slice
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		slices: make(map[string]Slice),
	}
}

// Get returns the named slice and whether it exists.
func (s *Store) Get(name string) (Slice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slice, ok := s.slices[name]
	return slice, ok
}

// Set replaces the named slice's data and clears its loading and error
// state.
func (s *Store) Set(name string, data any, scope string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slices[name] = Slice{Data: data, Scope: scope}
}

// SetLoading marks the named slice as loading, retaining its data.
func (s *Store) SetLoading(name string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slice := s.slices[name]
	slice.Loading = loading
	s.slices[name] = slice
}

// SetError records a load failure for the named slice and clears its
// loading flag.
func (s *Store) SetError(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slice := s.slices[name]
	slice.Err = err
	slice.Loading = false
	s.slices[name] = slice
}
