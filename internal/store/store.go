// Package store owns the single in-memory state shared by every request and
// mirrors it to a persistence gateway after each mutation.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Gateway persists one opaque record per table
type Gateway interface {
	Load(ctx context.Context, table string) ([]byte, bool, error)
	Save(ctx context.Context, table string, payload []byte) error
}

// Store guards the State with one mutex. Updates are saved synchronously
// before the lock is released, so a caller always reads its own writes.
type Store struct {
	mu    sync.Mutex // Guards state
	state *State     // The whole application state
	gw    Gateway    // nil keeps the state in memory only
}

// New creates a store with an empty state
func New(gw Gateway) *Store {
	return &Store{state: NewState(), gw: gw}
}

// Load replaces the state with what the gateway holds. A missing record
// leaves that table at its empty default.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := NewState() // Start from empty defaults
	if s.gw != nil {
		for _, t := range Tables {
			payload, found, err := s.gw.Load(ctx, string(t))
			if err != nil {
				return fmt.Errorf("load %s: %w", t, err)
			}
			if !found {
				continue // Missing record loads as empty
			}
			if err := st.decode(t, payload); err != nil {
				return fmt.Errorf("decode %s: %w", t, err)
			}
		}
	}
	s.state = st // Swap in the loaded state
	return nil
}

// Update runs fn under the lock and then saves every table fn touched.
// Touched tables are saved even when fn fails, so memory and storage never
// drift apart. Save failures are logged and swallowed.
func (s *Store) Update(ctx context.Context, fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.dirty = map[Table]struct{}{} // Fresh dirty set per update
	err := fn(s.state)                   // Run the mutation
	s.flush(ctx)                         // Save whatever it touched
	return err
}

// View runs fn under the lock; fn must not mutate the state
func (s *Store) View(fn func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}

// flush saves dirty tables in a fixed order; caller holds the lock
func (s *Store) flush(ctx context.Context) {
	dirty := s.state.dirty
	s.state.dirty = map[Table]struct{}{}
	if s.gw == nil || len(dirty) == 0 {
		return // Nothing to save
	}
	for _, t := range Tables {
		if _, ok := dirty[t]; !ok {
			continue
		}
		payload, err := s.state.encode(t) // Encode the table
		if err == nil {
			err = s.gw.Save(ctx, string(t), payload) // One record per table
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"table": t,           // Table that failed
				"error": err.Error(), // Error message
			}).Error("Failed to save table")
		}
	}
}
