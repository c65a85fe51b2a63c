package mapper

import (
	"time"

	petstypes "github.com/Apurer/go-vet-office/internal/domains/pets/application/types"
	"github.com/Apurer/go-vet-office/internal/domains/pets/domain"
	"github.com/Apurer/go-vet-office/internal/shared/age"
)

// MutationPet is the inbound payload for create and update flows.
type MutationPet struct {
	ID                 int64  `json:"id,omitempty"`
	Name               string `json:"name"`
	OwnerName          string `json:"ownerName"`
	Species            string `json:"species,omitempty"`
	Breed              string `json:"breed,omitempty"`
	Color              string `json:"color,omitempty"`
	DateOfBirth        string `json:"dateOfBirth,omitempty"`
	Gender             string `json:"gender,omitempty"`
	ReproductiveStatus string `json:"reproductiveStatus,omitempty"`
}

// Pet is the HTTP representation of a registered pet.
type Pet struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	OwnerName          string    `json:"ownerName"`
	Species            string    `json:"species,omitempty"`
	Breed              string    `json:"breed,omitempty"`
	Color              string    `json:"color,omitempty"`
	DateOfBirth        string    `json:"dateOfBirth,omitempty"`
	Gender             string    `json:"gender,omitempty"`
	ReproductiveStatus string    `json:"reproductiveStatus,omitempty"`
	Age                string    `json:"age,omitempty"`
	CreatedAt          time.Time `json:"createdAt,omitempty"`
	UpdatedAt          time.Time `json:"updatedAt,omitempty"`
}

// FromDomainPet maps a domain aggregate into a transport Pet. The age is
// derived against deriver's clock.
func FromDomainPet(p *domain.Pet, deriver age.Deriver) Pet {
	dob := p.BirthDateString()
	return Pet{
		ID:                 p.ID,
		Name:               p.Name,
		OwnerName:          p.OwnerName,
		Species:            p.Species,
		Breed:              p.Breed,
		Color:              p.Color,
		DateOfBirth:        dob,
		Gender:             p.Gender,
		ReproductiveStatus: p.ReproductiveStatus,
		Age:                deriver.Derive(dob, ""),
	}
}

// ToAddPetInput converts a create payload.
func ToAddPetInput(model MutationPet) petstypes.AddPetInput {
	return petstypes.AddPetInput{ID: model.ID, PetMutationInput: toMutationInput(model)}
}

// ToUpdatePetInput converts an update payload for the pet addressed by id.
func ToUpdatePetInput(id int64, model MutationPet) petstypes.UpdatePetInput {
	return petstypes.UpdatePetInput{ID: id, PetMutationInput: toMutationInput(model)}
}

func toMutationInput(model MutationPet) petstypes.PetMutationInput {
	return petstypes.PetMutationInput{
		Name:               model.Name,
		OwnerName:          model.OwnerName,
		Species:            model.Species,
		Breed:              model.Breed,
		Color:              model.Color,
		DateOfBirth:        model.DateOfBirth,
		Gender:             model.Gender,
		ReproductiveStatus: model.ReproductiveStatus,
	}
}

// FromProjection maps a projection into a transport pet enriched with metadata.
func FromProjection(projection *petstypes.PetProjection, deriver age.Deriver) Pet {
	pet := FromDomainPet(projection.Pet, deriver)
	pet.CreatedAt = projection.Metadata.CreatedAt
	pet.UpdatedAt = projection.Metadata.UpdatedAt
	return pet
}

// FromProjectionList maps a slice of projections into transport pets with metadata.
func FromProjectionList(list []*petstypes.PetProjection, deriver age.Deriver) []Pet {
	result := make([]Pet, 0, len(list))
	for _, projection := range list {
		result = append(result, FromProjection(projection, deriver))
	}
	return result
}
