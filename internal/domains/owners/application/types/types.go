package types

import (
	"time"

	"github.com/Apurer/go-vet-office/internal/domains/owners/domain"
	"github.com/Apurer/go-vet-office/internal/shared/projection"
)

// CreateOwnerInput registers an owner. Birthdate accepts any layout the
// age package parses.
type CreateOwnerInput struct {
	Name          string
	ContactNumber string
	Birthdate     string
}

// SearchOwnersInput is a free-text owner name query.
type SearchOwnersInput struct {
	Query string
}

// OwnerIdentifier references an owner by ID.
type OwnerIdentifier struct {
	ID int64
}

// PetSummary is the slice of a pet shown next to an owner in search results.
type PetSummary struct {
	ID      int64
	Name    string
	Species string
	Breed   string
}

// OwnerMatch is one search row: an owner joined with one of their pets.
// Pet is nil for owners without registered pets.
type OwnerMatch struct {
	Owner *domain.Owner
	Pet   *PetSummary
}

// OwnerMetadata captures persistence timestamps.
type OwnerMetadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnerProjection transports an owner together with its metadata.
type OwnerProjection struct {
	Owner    *domain.Owner
	Metadata OwnerMetadata
}

// FromProjection converts a repository projection.
func FromProjection(p *projection.Projection[*domain.Owner]) *OwnerProjection {
	if p == nil || p.Entity == nil {
		return nil
	}
	return &OwnerProjection{
		Owner:    p.Entity,
		Metadata: OwnerMetadata{CreatedAt: p.Metadata.CreatedAt, UpdatedAt: p.Metadata.UpdatedAt},
	}
}
