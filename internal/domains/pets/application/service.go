package application

import (
	"context"
	"sort"
	"strings"
	"time"

	types "github.com/Apurer/go-vet-office/internal/domains/pets/application/types"
	"github.com/Apurer/go-vet-office/internal/domains/pets/domain"
	"github.com/Apurer/go-vet-office/internal/domains/pets/ports"
	"github.com/Apurer/go-vet-office/internal/shared/age"
)

// Service orchestrates the pets bounded context use cases.
type Service struct {
	repo ports.Repository
	now  func() time.Time
}

// NewService wires the pets service with its dependencies.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the clock used to reject future birth dates.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// AddPet persists a new pet aggregate.
func (s *Service) AddPet(ctx context.Context, input types.AddPetInput) (*types.PetProjection, error) {
	pet, err := domain.NewPet(input.ID, input.Name, input.OwnerName)
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.apply(pet, input.PetMutationInput); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, pet)
	if err != nil {
		return nil, mapError(err)
	}
	return types.FromProjection(saved), nil
}

// UpdatePet overrides an existing pet with new state.
func (s *Service) UpdatePet(ctx context.Context, input types.UpdatePetInput) (*types.PetProjection, error) {
	existing, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	pet := existing.Entity
	if err := pet.Rename(input.Name); err != nil {
		return nil, mapError(err)
	}
	if err := pet.AssignOwner(input.OwnerName); err != nil {
		return nil, mapError(err)
	}
	if err := s.apply(pet, input.PetMutationInput); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, pet)
	if err != nil {
		return nil, mapError(err)
	}
	return types.FromProjection(saved), nil
}

// GetByID loads a single pet aggregate.
func (s *Service) GetByID(ctx context.Context, input types.PetIdentifier) (*types.PetProjection, error) {
	found, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return types.FromProjection(found), nil
}

// Delete removes a pet.
func (s *Service) Delete(ctx context.Context, input types.PetIdentifier) error {
	if err := s.repo.Delete(ctx, input.ID); err != nil {
		return mapError(err)
	}
	return nil
}

// List returns the pets of one owner, or all pets, ordered by name then ID.
func (s *Service) List(ctx context.Context, input types.ListPetsInput) ([]*types.PetProjection, error) {
	found, err := s.repo.List(ctx, ports.ListFilter{OwnerName: strings.TrimSpace(input.OwnerName)})
	if err != nil {
		return nil, mapError(err)
	}
	result := types.FromProjectionList(found)
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i].Pet, result[j].Pet
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return result, nil
}

func (s *Service) apply(pet *domain.Pet, input types.PetMutationInput) error {
	pet.Describe(input.Species, input.Breed, input.Color)
	pet.UpdateSex(input.Gender)
	pet.UpdateReproductiveStatus(input.ReproductiveStatus)
	var dob *time.Time
	if strings.TrimSpace(input.DateOfBirth) != "" {
		parsed, err := age.Parse(input.DateOfBirth)
		if err != nil {
			return err
		}
		dob = &parsed
	}
	return pet.UpdateBirthDate(dob, s.now())
}

var _ ports.Service = (*Service)(nil)
