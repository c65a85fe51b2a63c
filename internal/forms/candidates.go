// Package forms hosts the owner and pet selectors inside the office forms
// and applies the selection cascade to the patient fields.
package forms

import (
	"context"
	"strings"
)

// PetPreview is the pet joined onto an owner search row.
type PetPreview struct {
	Name    string `json:"petName"`
	Species string `json:"petSpecies,omitempty"`
	Breed   string `json:"petBreed,omitempty"`
}

// OwnerCandidate is one owner search row. Owners with several pets appear
// once per pet.
type OwnerCandidate struct {
	OwnerName     string     `json:"ownerName"`
	ContactNumber string     `json:"contactNumber,omitempty"`
	Birthdate     string     `json:"birthdate,omitempty"`
	Pet           PetPreview `json:"pet"`
}

// Label is the text shown in the owner input once selected.
func (c OwnerCandidate) Label() string { return c.OwnerName }

// PetCandidate is one pet offered by the pet selector.
type PetCandidate struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	OwnerName          string `json:"ownerName"`
	Species            string `json:"species,omitempty"`
	Breed              string `json:"breed,omitempty"`
	Color              string `json:"color,omitempty"`
	DateOfBirth        string `json:"dateOfBirth,omitempty"`
	Gender             string `json:"gender,omitempty"`
	ReproductiveStatus string `json:"reproductiveStatus,omitempty"`
}

// Label is the text shown in the pet input once selected.
func (c PetCandidate) Label() string { return c.Name }

// Directory is the search backend the selectors read from.
type Directory interface {
	// SearchOwners returns owner+pet rows matching query, in backend order.
	SearchOwners(ctx context.Context, query string) ([]OwnerCandidate, error)
	// ListPets returns the pets of ownerFilter, or every pet when it is empty.
	ListPets(ctx context.Context, ownerFilter string) ([]PetCandidate, error)
}

// sameOwner compares owners by display name, the only identity the search
// rows carry. Two distinct owners sharing a name compare equal.
func sameOwner(a, b string) bool {
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}
