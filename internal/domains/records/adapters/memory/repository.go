package memory

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-vet-office/internal/domains/records/domain"
	"github.com/Apurer/go-vet-office/internal/domains/records/ports"
	"github.com/Apurer/go-vet-office/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps submissions in memory.
type Repository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*storedRecord
	now     func() time.Time
}

type storedRecord struct {
	sub      *domain.Submission
	metadata projection.Metadata
}

func NewRepository() *Repository {
	return &Repository{records: map[uuid.UUID]*storedRecord{}, now: time.Now}
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

// Save upserts by submission ID.
func (r *Repository) Save(_ context.Context, sub *domain.Submission) (*projection.Projection[*domain.Submission], error) {
	if sub == nil || sub.ID == uuid.Nil {
		return nil, errors.New("cannot save submission without id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	timestamp := r.now()
	metadata := projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if existing, ok := r.records[sub.ID]; ok {
		metadata.CreatedAt = existing.metadata.CreatedAt
	}
	entry := &storedRecord{sub: sub.Clone(), metadata: metadata}
	r.records[sub.ID] = entry
	return entry.projection(), nil
}

// GetByID fetches a submission.
func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*projection.Projection[*domain.Submission], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.records[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return entry.projection(), nil
}

// List returns matching submissions, newest first.
func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]*projection.Projection[*domain.Submission], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*projection.Projection[*domain.Submission]
	for _, entry := range r.records {
		if matches(entry.sub, filter) {
			list = append(list, entry.projection())
		}
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i].Entity, list[j].Entity
		if !a.SubmittedAt.Equal(b.SubmittedAt) {
			return a.SubmittedAt.After(b.SubmittedAt)
		}
		return a.ID.String() < b.ID.String()
	})
	return list, nil
}

func matches(sub *domain.Submission, filter ports.ListFilter) bool {
	if filter.Kind != "" && sub.Record.Kind() != filter.Kind {
		return false
	}
	if filter.OwnerName != "" && sub.Record.PatientInfo().OwnerName != filter.OwnerName {
		return false
	}
	if filter.Vaccine != "" {
		v, ok := sub.Record.(domain.Vaccination)
		if !ok || !slices.Contains(v.Vaccines, filter.Vaccine) {
			return false
		}
	}
	return true
}

func (e *storedRecord) projection() *projection.Projection[*domain.Submission] {
	return &projection.Projection[*domain.Submission]{Entity: e.sub.Clone(), Metadata: e.metadata}
}
