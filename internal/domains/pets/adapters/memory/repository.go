package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/Apurer/go-vet-office/internal/domains/pets/domain"
	"github.com/Apurer/go-vet-office/internal/domains/pets/ports"
	"github.com/Apurer/go-vet-office/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory implementation used for demos/tests.
type Repository struct {
	mu     sync.RWMutex
	pets   map[int64]*storedPet
	nextID int64
	now    func() time.Time
}

type storedPet struct {
	pet      *domain.Pet
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		pets: map[int64]*storedPet{},
		now:  time.Now,
	}
}

// WithClock overrides the timestamp source.
func (r *Repository) WithClock(now func() time.Time) {
	if now == nil {
		return
	}
	r.mu.Lock()
	r.now = now
	r.mu.Unlock()
}

// Save inserts or replaces a pet while maintaining metadata.
func (r *Repository) Save(_ context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error) {
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := pet.Clone()
	if stored.ID == 0 {
		r.nextID++
		for r.pets[r.nextID] != nil {
			r.nextID++
		}
		stored.ID = r.nextID
	} else if stored.ID > r.nextID {
		r.nextID = stored.ID
	}

	timestamp := r.now()
	metadata := projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if entry, ok := r.pets[stored.ID]; ok {
		metadata.CreatedAt = entry.metadata.CreatedAt
	}
	entry := &storedPet{pet: stored, metadata: metadata}
	r.pets[stored.ID] = entry
	return projectionCopy(entry), nil
}

// GetByID fetches a pet if present.
func (r *Repository) GetByID(_ context.Context, id int64) (*projection.Projection[*domain.Pet], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.pets[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// Delete removes a pet.
func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pets[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.pets, id)
	return nil
}

// List returns the pets matching filter in unspecified order.
func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]*projection.Projection[*domain.Pet], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	owner := strings.TrimSpace(filter.OwnerName)
	list := make([]*projection.Projection[*domain.Pet], 0, len(r.pets))
	for _, entry := range r.pets {
		if owner != "" && entry.pet.OwnerName != owner {
			continue
		}
		list = append(list, projectionCopy(entry))
	}
	return list, nil
}

func projectionCopy(entry *storedPet) *projection.Projection[*domain.Pet] {
	return &projection.Projection[*domain.Pet]{
		Entity:   entry.pet.Clone(),
		Metadata: entry.metadata,
	}
}
