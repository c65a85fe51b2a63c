package types

import (
	"time"

	"github.com/Apurer/go-vet-office/internal/domains/pets/domain"
	"github.com/Apurer/go-vet-office/internal/shared/projection"
)

// PetMetadata captures infrastructure timestamps associated with a persisted pet.
type PetMetadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PetProjection transports a domain aggregate together with its persistence metadata.
type PetProjection struct {
	Pet      *domain.Pet
	Metadata PetMetadata
}

// FromProjection converts a repository projection.
func FromProjection(p *projection.Projection[*domain.Pet]) *PetProjection {
	if p == nil || p.Entity == nil {
		return nil
	}
	return &PetProjection{
		Pet:      p.Entity,
		Metadata: PetMetadata{CreatedAt: p.Metadata.CreatedAt, UpdatedAt: p.Metadata.UpdatedAt},
	}
}

// FromProjectionList converts a slice of repository projections.
func FromProjectionList(sources []*projection.Projection[*domain.Pet]) []*PetProjection {
	result := make([]*PetProjection, 0, len(sources))
	for _, src := range sources {
		if converted := FromProjection(src); converted != nil {
			result = append(result, converted)
		}
	}
	return result
}
