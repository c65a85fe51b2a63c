// Package appstate holds the process-wide session state of the office
// tools. The state is loaded once at start-up with Init and cleared at
// sign-out with Teardown; nothing reads it through package globals.
package appstate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
)

// MaxRecentOwners bounds State.RecentOwners.
const MaxRecentOwners = 5

// ErrNotInitialized is returned by mutations made before Init.
var ErrNotInitialized = errors.New("appstate: store not initialized")

// State is the persisted session state.
type State struct {
	Clinician        string   `yaml:"clinician,omitempty"`
	SidebarCollapsed bool     `yaml:"sidebarCollapsed,omitempty"`
	APIBaseURL       string   `yaml:"apiBaseURL,omitempty"`
	RecentOwners     []string `yaml:"recentOwners,omitempty"`
}

// Clone returns a copy that shares no slices with s.
func (s State) Clone() State {
	s.RecentOwners = slices.Clone(s.RecentOwners)
	return s
}

// Persister stores the state between runs.
type Persister interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, state State) error
	Clear(ctx context.Context) error
}

// Option configures a Store.
type Option func(*Store)

// WithLogger injects a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store owns the state for the lifetime of the process.
type Store struct {
	persister Persister
	logger    *slog.Logger

	mu          sync.RWMutex
	state       State
	initialized bool
}

// New builds a store over persister.
func New(persister Persister, opts ...Option) *Store {
	s := &Store{
		persister: persister,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Init reads the persisted state. Calling it again reloads.
func (s *Store) Init(ctx context.Context) error {
	loaded, err := s.persister.Load(ctx)
	if err != nil {
		return fmt.Errorf("load app state: %w", err)
	}
	s.mu.Lock()
	s.state = loaded.Clone()
	s.initialized = true
	s.mu.Unlock()
	s.logger.LogAttrs(ctx, slog.LevelDebug, "app state loaded",
		slog.String("clinician", loaded.Clinician),
		slog.Int("recentOwners", len(loaded.RecentOwners)))
	return nil
}

// Teardown clears the in-memory and the persisted state. The store must be
// initialized again before the next mutation.
func (s *Store) Teardown(ctx context.Context) error {
	s.mu.Lock()
	s.state = State{}
	s.initialized = false
	s.mu.Unlock()
	if err := s.persister.Clear(ctx); err != nil {
		return fmt.Errorf("clear app state: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelDebug, "app state cleared")
	return nil
}

// Initialized reports whether Init ran since the last Teardown.
func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Update applies fn to the state and persists the result.
func (s *Store) Update(ctx context.Context, fn func(*State)) error {
	s.mu.Lock()
	if !s.initialized {
		s.mu.Unlock()
		return ErrNotInitialized
	}
	next := s.state.Clone()
	fn(&next)
	s.state = next
	s.mu.Unlock()
	if err := s.persister.Save(ctx, next); err != nil {
		return fmt.Errorf("save app state: %w", err)
	}
	return nil
}

// RememberOwner moves owner to the front of the recent owners list.
func (s *Store) RememberOwner(ctx context.Context, owner string) error {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil
	}
	return s.Update(ctx, func(st *State) {
		recent := []string{owner}
		for _, name := range st.RecentOwners {
			if name != owner && len(recent) < MaxRecentOwners {
				recent = append(recent, name)
			}
		}
		st.RecentOwners = recent
	})
}
