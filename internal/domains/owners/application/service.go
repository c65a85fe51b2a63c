package application

import (
	"context"
	"sort"
	"strings"
	"time"

	ownertypes "github.com/Apurer/go-vet-office/internal/domains/owners/application/types"
	"github.com/Apurer/go-vet-office/internal/domains/owners/domain"
	"github.com/Apurer/go-vet-office/internal/domains/owners/ports"
	"github.com/Apurer/go-vet-office/internal/shared/age"
)

// Service orchestrates the owners use cases.
type Service struct {
	repo ports.Repository
	pets ports.PetDirectory
	now  func() time.Time
}

// NewService wires the owners service. pets may be nil, in which case
// search rows never carry a pet.
func NewService(repo ports.Repository, pets ports.PetDirectory) *Service {
	return &Service{repo: repo, pets: pets, now: time.Now}
}

// WithClock overrides the clock used to reject future birthdates.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// CreateOwner registers a new owner.
func (s *Service) CreateOwner(ctx context.Context, input ownertypes.CreateOwnerInput) (*ownertypes.OwnerProjection, error) {
	owner, err := domain.NewOwner(0, input.Name, input.ContactNumber)
	if err != nil {
		return nil, mapError(err)
	}
	if strings.TrimSpace(input.Birthdate) != "" {
		born, err := age.Parse(input.Birthdate)
		if err != nil {
			return nil, mapError(err)
		}
		if err := owner.UpdateBirthdate(&born, s.now()); err != nil {
			return nil, mapError(err)
		}
	}
	saved, err := s.repo.Save(ctx, owner)
	if err != nil {
		return nil, mapError(err)
	}
	return ownertypes.FromProjection(saved), nil
}

// GetOwner loads a single owner.
func (s *Service) GetOwner(ctx context.Context, input ownertypes.OwnerIdentifier) (*ownertypes.OwnerProjection, error) {
	found, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return ownertypes.FromProjection(found), nil
}

// SearchOwners returns one row per owner and pet for every owner whose name
// contains the query. Owners without pets yield a single row with a nil Pet.
// Rows are ordered by owner name, then pet name.
func (s *Service) SearchOwners(ctx context.Context, input ownertypes.SearchOwnersInput) ([]ownertypes.OwnerMatch, error) {
	owners, err := s.repo.Search(ctx, strings.TrimSpace(input.Query))
	if err != nil {
		return nil, mapError(err)
	}
	petsByOwner := make(map[string][]ownertypes.PetSummary)
	var rows []ownertypes.OwnerMatch
	for _, found := range owners {
		owner := found.Entity
		pets, seen := petsByOwner[owner.Name]
		if !seen && s.pets != nil {
			pets, err = s.pets.PetsOf(ctx, owner.Name)
			if err != nil {
				return nil, err
			}
			petsByOwner[owner.Name] = pets
		}
		if len(pets) == 0 {
			rows = append(rows, ownertypes.OwnerMatch{Owner: owner})
			continue
		}
		for i := range pets {
			pet := pets[i]
			rows = append(rows, ownertypes.OwnerMatch{Owner: owner, Pet: &pet})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Owner.Name != b.Owner.Name {
			return a.Owner.Name < b.Owner.Name
		}
		if an, bn := petName(a), petName(b); an != bn {
			return an < bn
		}
		return a.Owner.ID < b.Owner.ID
	})
	return rows, nil
}

func petName(m ownertypes.OwnerMatch) string {
	if m.Pet == nil {
		return ""
	}
	return m.Pet.Name
}

var _ ports.Service = (*Service)(nil)
