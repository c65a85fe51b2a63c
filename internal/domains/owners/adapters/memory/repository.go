package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"

	"github.com/Apurer/go-vet-office/internal/domains/owners/domain"
	"github.com/Apurer/go-vet-office/internal/domains/owners/ports"
	"github.com/Apurer/go-vet-office/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory owners store used for demos and tests.
type Repository struct {
	mu     sync.RWMutex
	owners map[int64]*storedOwner
	nextID int64
	now    func() time.Time
}

type storedOwner struct {
	owner    *domain.Owner
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		owners: map[int64]*storedOwner{},
		now:    time.Now,
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

// Save inserts or replaces an owner, assigning an ID when it has none.
func (r *Repository) Save(_ context.Context, owner *domain.Owner) (*projection.Projection[*domain.Owner], error) {
	if owner == nil {
		return nil, errors.New("cannot save nil owner")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := owner.Clone()
	if stored.ID == 0 {
		r.nextID++
		for r.owners[r.nextID] != nil {
			r.nextID++
		}
		stored.ID = r.nextID
	} else if stored.ID > r.nextID {
		r.nextID = stored.ID
	}

	timestamp := r.now()
	metadata := projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if entry, ok := r.owners[stored.ID]; ok {
		metadata.CreatedAt = entry.metadata.CreatedAt
	}
	entry := &storedOwner{owner: stored, metadata: metadata}
	r.owners[stored.ID] = entry
	return projectionCopy(entry), nil
}

// GetByID fetches an owner if present.
func (r *Repository) GetByID(_ context.Context, id int64) (*projection.Projection[*domain.Owner], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.owners[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// Search returns owners whose folded name contains the folded query.
func (r *Repository) Search(_ context.Context, query string) ([]*projection.Projection[*domain.Owner], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(query))
	list := make([]*projection.Projection[*domain.Owner], 0)
	for _, entry := range r.owners {
		if needle != "" && !strings.Contains(fold.String(entry.owner.Name), needle) {
			continue
		}
		list = append(list, projectionCopy(entry))
	}
	return list, nil
}

func projectionCopy(entry *storedOwner) *projection.Projection[*domain.Owner] {
	return &projection.Projection[*domain.Owner]{
		Entity:   entry.owner.Clone(),
		Metadata: entry.metadata,
	}
}
