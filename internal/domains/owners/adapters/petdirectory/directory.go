// Package petdirectory adapts the pets context to the owners PetDirectory port.
package petdirectory

import (
	"context"

	ownertypes "github.com/Apurer/go-vet-office/internal/domains/owners/application/types"
	"github.com/Apurer/go-vet-office/internal/domains/owners/ports"
	pettypes "github.com/Apurer/go-vet-office/internal/domains/pets/application/types"
	petports "github.com/Apurer/go-vet-office/internal/domains/pets/ports"
)

var _ ports.PetDirectory = (*Directory)(nil)

// Directory answers PetsOf through the pets service.
type Directory struct {
	pets petports.Service
}

func New(pets petports.Service) *Directory {
	return &Directory{pets: pets}
}

// PetsOf lists the pets registered under ownerName.
func (d *Directory) PetsOf(ctx context.Context, ownerName string) ([]ownertypes.PetSummary, error) {
	found, err := d.pets.List(ctx, pettypes.ListPetsInput{OwnerName: ownerName})
	if err != nil {
		return nil, err
	}
	summaries := make([]ownertypes.PetSummary, 0, len(found))
	for _, p := range found {
		summaries = append(summaries, ownertypes.PetSummary{
			ID:      p.Pet.ID,
			Name:    p.Pet.Name,
			Species: p.Pet.Species,
			Breed:   p.Pet.Breed,
		})
	}
	return summaries, nil
}
