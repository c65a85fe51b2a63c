package appstate

import (
	"context"
	"sync"
)

// MemoryPersister keeps the state for the lifetime of the process only.
type MemoryPersister struct {
	mu    sync.Mutex
	state State
}

// NewMemoryPersister returns a persister seeded with initial.
func NewMemoryPersister(initial State) *MemoryPersister {
	return &MemoryPersister{state: initial.Clone()}
}

func (p *MemoryPersister) Load(_ context.Context) (State, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Clone(), nil
}

func (p *MemoryPersister) Save(_ context.Context, state State) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = state.Clone()
	return nil
}

func (p *MemoryPersister) Clear(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = State{}
	return nil
}

var _ Persister = (*MemoryPersister)(nil)
