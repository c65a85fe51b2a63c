package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	petmemory "github.com/Apurer/go-vet-office/internal/domains/pets/adapters/memory"
	pettypes "github.com/Apurer/go-vet-office/internal/domains/pets/application/types"
	"github.com/Apurer/go-vet-office/internal/domains/pets/domain"
	"github.com/Apurer/go-vet-office/internal/domains/pets/ports"
	"github.com/Apurer/go-vet-office/internal/shared/age"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
}

func TestAddPet_Success(t *testing.T) {
	repo := petmemory.NewRepository()
	svc := NewService(repo).WithClock(fixedNow)

	proj, err := svc.AddPet(context.Background(), pettypes.AddPetInput{
		PetMutationInput: pettypes.PetMutationInput{
			Name:               " Rex ",
			OwnerName:          "Ann Bell",
			Species:            "Dog",
			Breed:              "Aspin",
			DateOfBirth:        "2020-01-15",
			Gender:             "m",
			ReproductiveStatus: "neutered",
		},
	})

	require.NoError(t, err)
	require.NotNil(t, proj)
	require.Equal(t, int64(1), proj.Pet.ID)
	require.Equal(t, "Rex", proj.Pet.Name)
	require.Equal(t, domain.SexMale, proj.Pet.Gender)
	require.Equal(t, domain.StatusCastratedSpayed, proj.Pet.ReproductiveStatus)
	require.Equal(t, "2020-01-15", proj.Pet.BirthDateString())
	require.False(t, proj.Metadata.CreatedAt.IsZero())
	require.False(t, proj.Metadata.UpdatedAt.IsZero())
}

func TestAddPet_InvalidInput(t *testing.T) {
	svc := NewService(petmemory.NewRepository()).WithClock(fixedNow)

	cases := map[string]pettypes.PetMutationInput{
		"missing name":  {OwnerName: "Ann Bell"},
		"missing owner": {Name: "Rex"},
		"future dob":    {Name: "Rex", OwnerName: "Ann Bell", DateOfBirth: "2030-01-01"},
		"bad dob":       {Name: "Rex", OwnerName: "Ann Bell", DateOfBirth: "someday"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.AddPet(context.Background(), pettypes.AddPetInput{PetMutationInput: input})
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	_, err := svc.AddPet(context.Background(), pettypes.AddPetInput{
		PetMutationInput: pettypes.PetMutationInput{Name: "Rex", OwnerName: "Ann Bell", DateOfBirth: "nope"},
	})
	require.ErrorIs(t, err, age.ErrUnparsable)
}

func TestUpdatePet_UpdatesMetadata(t *testing.T) {
	repo := petmemory.NewRepository()
	repo.WithClock(time.Now)
	svc := NewService(repo)

	proj, err := svc.AddPet(context.Background(), pettypes.AddPetInput{
		PetMutationInput: pettypes.PetMutationInput{Name: "Rex", OwnerName: "Ann Bell"},
	})
	require.NoError(t, err)

	updated, err := svc.UpdatePet(context.Background(), pettypes.UpdatePetInput{
		ID:               proj.Pet.ID,
		PetMutationInput: pettypes.PetMutationInput{Name: "Rexy", OwnerName: "Ann Bell", Gender: "F"},
	})
	require.NoError(t, err)
	require.Equal(t, "Rexy", updated.Pet.Name)
	require.Equal(t, domain.SexFemale, updated.Pet.Gender)
	require.Equal(t, proj.Metadata.CreatedAt, updated.Metadata.CreatedAt)
	require.False(t, updated.Metadata.UpdatedAt.Before(proj.Metadata.UpdatedAt))
}

func TestUpdatePet_NotFound(t *testing.T) {
	svc := NewService(petmemory.NewRepository())

	_, err := svc.UpdatePet(context.Background(), pettypes.UpdatePetInput{
		ID:               42,
		PetMutationInput: pettypes.PetMutationInput{Name: "Rex", OwnerName: "Ann Bell"},
	})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestList_FiltersByOwnerAndSortsByName(t *testing.T) {
	svc := NewService(petmemory.NewRepository())
	ctx := context.Background()

	for _, in := range []pettypes.PetMutationInput{
		{Name: "Rex", OwnerName: "Ann Bell"},
		{Name: "Bantay", OwnerName: "Tom Bell"},
		{Name: "Mimi", OwnerName: "Ann Bell"},
	} {
		_, err := svc.AddPet(ctx, pettypes.AddPetInput{PetMutationInput: in})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, pettypes.ListPetsInput{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "Bantay", all[0].Pet.Name)

	anns, err := svc.List(ctx, pettypes.ListPetsInput{OwnerName: " Ann Bell "})
	require.NoError(t, err)
	require.Len(t, anns, 2)
	require.Equal(t, "Mimi", anns[0].Pet.Name)
	require.Equal(t, "Rex", anns[1].Pet.Name)
}

func TestGetAndDelete(t *testing.T) {
	svc := NewService(petmemory.NewRepository())
	ctx := context.Background()

	proj, err := svc.AddPet(ctx, pettypes.AddPetInput{
		ID:               7,
		PetMutationInput: pettypes.PetMutationInput{Name: "Rex", OwnerName: "Ann Bell"},
	})
	require.NoError(t, err)
	require.Equal(t, int64(7), proj.Pet.ID)

	found, err := svc.GetByID(ctx, pettypes.PetIdentifier{ID: 7})
	require.NoError(t, err)
	require.Equal(t, "Rex", found.Pet.Name)

	require.NoError(t, svc.Delete(ctx, pettypes.PetIdentifier{ID: 7}))
	_, err = svc.GetByID(ctx, pettypes.PetIdentifier{ID: 7})
	require.ErrorIs(t, err, ports.ErrNotFound)
}
