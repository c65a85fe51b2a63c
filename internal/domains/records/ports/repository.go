package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Apurer/go-vet-office/internal/domains/records/domain"
	"github.com/Apurer/go-vet-office/internal/shared/projection"
)

var ErrNotFound = errors.New("record not found")

// ListFilter narrows List; zero fields are ignored.
type ListFilter struct {
	Kind      domain.Kind
	OwnerName string
	Vaccine   string
}

// Repository persists submissions. Save upserts by submission ID.
type Repository interface {
	Save(ctx context.Context, sub *domain.Submission) (*projection.Projection[*domain.Submission], error)
	GetByID(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.Submission], error)
	List(ctx context.Context, filter ListFilter) ([]*projection.Projection[*domain.Submission], error)
}
