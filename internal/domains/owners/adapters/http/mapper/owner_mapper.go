package mapper

import (
	"time"

	ownertypes "github.com/Apurer/go-vet-office/internal/domains/owners/application/types"
)

// CreateOwner is the inbound payload of POST /v1/owners.
type CreateOwner struct {
	Name          string `json:"name"`
	ContactNumber string `json:"contactNumber,omitempty"`
	Birthdate     string `json:"birthdate,omitempty"`
}

// Owner is the HTTP representation of an owner.
type Owner struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	ContactNumber string    `json:"contactNumber,omitempty"`
	Birthdate     string    `json:"birthdate,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty"`
}

// PetPreview is the pet part of a search row.
type PetPreview struct {
	Name    string `json:"name"`
	Species string `json:"species,omitempty"`
	Breed   string `json:"breed,omitempty"`
}

// OwnerSearchRow is one owner/pet pair returned by the owner search.
type OwnerSearchRow struct {
	OwnerID       int64       `json:"ownerId"`
	OwnerName     string      `json:"ownerName"`
	ContactNumber string      `json:"contactNumber,omitempty"`
	Birthdate     string      `json:"birthdate,omitempty"`
	Pet           *PetPreview `json:"pet,omitempty"`
}

func ToCreateOwnerInput(in CreateOwner) ownertypes.CreateOwnerInput {
	return ownertypes.CreateOwnerInput{Name: in.Name, ContactNumber: in.ContactNumber, Birthdate: in.Birthdate}
}

// FromProjection maps an owner projection to its transport form.
func FromProjection(p *ownertypes.OwnerProjection) Owner {
	return Owner{
		ID:            p.Owner.ID,
		Name:          p.Owner.Name,
		ContactNumber: p.Owner.ContactNumber,
		Birthdate:     p.Owner.BirthdateString(),
		CreatedAt:     p.Metadata.CreatedAt,
		UpdatedAt:     p.Metadata.UpdatedAt,
	}
}

// FromMatches maps search rows, keeping their order.
func FromMatches(rows []ownertypes.OwnerMatch) []OwnerSearchRow {
	out := make([]OwnerSearchRow, 0, len(rows))
	for _, r := range rows {
		row := OwnerSearchRow{
			OwnerID:       r.Owner.ID,
			OwnerName:     r.Owner.Name,
			ContactNumber: r.Owner.ContactNumber,
			Birthdate:     r.Owner.BirthdateString(),
		}
		if r.Pet != nil {
			row.Pet = &PetPreview{Name: r.Pet.Name, Species: r.Pet.Species, Breed: r.Pet.Breed}
		}
		out = append(out, row)
	}
	return out
}
