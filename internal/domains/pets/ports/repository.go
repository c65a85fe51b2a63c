package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-vet-office/internal/domains/pets/domain"
	"github.com/Apurer/go-vet-office/internal/shared/projection"
)

var ErrNotFound = errors.New("pet not found")

// ListFilter narrows List. An empty OwnerName matches every pet.
type ListFilter struct {
	OwnerName string
}

// Repository persists pets. Save assigns an ID when the pet has none.
type Repository interface {
	Save(ctx context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error)
	GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Pet], error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ListFilter) ([]*projection.Projection[*domain.Pet], error)
}
