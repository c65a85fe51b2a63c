package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-vet-office/internal/domains/owners/domain"
	"github.com/Apurer/go-vet-office/internal/shared/projection"
)

var ErrNotFound = errors.New("owner not found")

// Repository persists owners.
type Repository interface {
	Save(ctx context.Context, owner *domain.Owner) (*projection.Projection[*domain.Owner], error)
	GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Owner], error)
	// Search returns owners whose name contains query, ignoring case. An
	// empty query matches every owner.
	Search(ctx context.Context, query string) ([]*projection.Projection[*domain.Owner], error)
}
