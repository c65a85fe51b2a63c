package domain

import (
	"errors"
	"strings"
	"time"
)

// Pet is a patient registered with the veterinary office.
type Pet struct {
	ID                 int64
	Name               string
	OwnerName          string
	Species            string
	Breed              string
	Color              string
	DateOfBirth        *time.Time
	Gender             string
	ReproductiveStatus string
}

var (
	ErrEmptyName       = errors.New("pet name is required")
	ErrEmptyOwner      = errors.New("owner name is required")
	ErrFutureBirthDate = errors.New("date of birth cannot be in the future")
	ErrInvalidPetID    = errors.New("pet id must not be negative")
)

// NewPet validates the invariants and builds a new Pet.
func NewPet(id int64, name, ownerName string) (*Pet, error) {
	if id < 0 {
		return nil, ErrInvalidPetID
	}
	p := &Pet{ID: id}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.AssignOwner(ownerName); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename mutates the pet name ensuring the invariant.
func (p *Pet) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// AssignOwner links the pet to an owner by display name.
func (p *Pet) AssignOwner(ownerName string) error {
	ownerName = strings.TrimSpace(ownerName)
	if ownerName == "" {
		return ErrEmptyOwner
	}
	p.OwnerName = ownerName
	return nil
}

// Describe stores the free-text descriptive attributes.
func (p *Pet) Describe(species, breed, color string) {
	p.Species = strings.TrimSpace(species)
	p.Breed = strings.TrimSpace(breed)
	p.Color = strings.TrimSpace(color)
}

// UpdateBirthDate records the date of birth; nil clears it.
func (p *Pet) UpdateBirthDate(dob *time.Time, now time.Time) error {
	if dob == nil {
		p.DateOfBirth = nil
		return nil
	}
	if dob.After(now) {
		return ErrFutureBirthDate
	}
	copy := *dob
	p.DateOfBirth = &copy
	return nil
}

// UpdateSex stores the normalized gender label.
func (p *Pet) UpdateSex(raw string) {
	p.Gender = NormalizeSex(raw)
}

// UpdateReproductiveStatus stores the normalized reproductive status label.
func (p *Pet) UpdateReproductiveStatus(raw string) {
	p.ReproductiveStatus = NormalizeReproductiveStatus(raw)
}

// BirthDateString renders the date of birth as YYYY-MM-DD, or "" when unknown.
func (p *Pet) BirthDateString() string {
	if p == nil || p.DateOfBirth == nil {
		return ""
	}
	return p.DateOfBirth.Format(time.DateOnly)
}

// Clone returns a deep copy.
func (p *Pet) Clone() *Pet {
	if p == nil {
		return nil
	}
	copy := *p
	if p.DateOfBirth != nil {
		dob := *p.DateOfBirth
		copy.DateOfBirth = &dob
	}
	return &copy
}
