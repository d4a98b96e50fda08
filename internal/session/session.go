// Package session holds the immutable data snapshot the API and CLI serve.
// A reload builds a new Session and swaps it in; sessions are never mutated.
package session

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/fuzzysystem/finance/internal/domain"
	"github.com/fuzzysystem/finance/internal/modules/optimization"
)

// Session is one loaded snapshot of the wide table and, optionally, the
// precomputed optimization results.
type Session struct {
	ID           string
	LoadedAt     time.Time
	Source       string
	Table        *domain.WideTable
	Optimization *optimization.Raw // nil when no optimization data is configured
}

// New wraps the loaded data in a session with a fresh id.
func New(source string, table *domain.WideTable, opt *optimization.Raw) *Session {
	return &Session{
		ID:           uuid.NewString(),
		LoadedAt:     time.Now().UTC(),
		Source:       source,
		Table:        table,
		Optimization: opt,
	}
}

// HasOptimization reports whether optimization data was loaded.
func (s *Session) HasOptimization() bool {
	return s.Optimization != nil
}

// Store publishes the current session to concurrent readers.
type Store struct {
	current atomic.Pointer[Session]
}

// NewStore creates a store holding initial, which may be nil.
func NewStore(initial *Session) *Store {
	s := &Store{}
	if initial != nil {
		s.current.Store(initial)
	}
	return s
}

// Current returns the active session, or nil before the first load.
func (s *Store) Current() *Session {
	return s.current.Load()
}

// Swap installs next and returns the session it replaced.
func (s *Store) Swap(next *Session) *Session {
	return s.current.Swap(next)
}
