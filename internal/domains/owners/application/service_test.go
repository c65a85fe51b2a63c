package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	ownermemory "github.com/Apurer/go-vet-office/internal/domains/owners/adapters/memory"
	"github.com/Apurer/go-vet-office/internal/domains/owners/adapters/petdirectory"
	ownertypes "github.com/Apurer/go-vet-office/internal/domains/owners/application/types"
	"github.com/Apurer/go-vet-office/internal/domains/owners/ports"
	petmemory "github.com/Apurer/go-vet-office/internal/domains/pets/adapters/memory"
	petapp "github.com/Apurer/go-vet-office/internal/domains/pets/application"
	pettypes "github.com/Apurer/go-vet-office/internal/domains/pets/application/types"
)

type failingPets struct{}

func (failingPets) PetsOf(context.Context, string) ([]ownertypes.PetSummary, error) {
	return nil, errors.New("pets unavailable")
}

func seed(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()
	pets := petapp.NewService(petmemory.NewRepository())
	for _, in := range []pettypes.PetMutationInput{
		{Name: "Rex", OwnerName: "Ann Bell", Species: "Dog"},
		{Name: "Mimi", OwnerName: "Ann Bell", Species: "Cat"},
		{Name: "Bantay", OwnerName: "Tom Bell", Species: "Dog"},
	} {
		_, err := pets.AddPet(ctx, pettypes.AddPetInput{PetMutationInput: in})
		require.NoError(t, err)
	}

	svc := NewService(ownermemory.NewRepository(), petdirectory.New(pets))
	for _, in := range []ownertypes.CreateOwnerInput{
		{Name: "Tom Bell", ContactNumber: "0917 222"},
		{Name: "Ann Bell", ContactNumber: "0917 111", Birthdate: "1980-05-02"},
		{Name: "Cara Lim", ContactNumber: "0917 333"},
	} {
		_, err := svc.CreateOwner(ctx, in)
		require.NoError(t, err)
	}
	return svc
}

func TestSearchOwners_JoinsPetsInOrder(t *testing.T) {
	svc := seed(t)

	rows, err := svc.SearchOwners(context.Background(), ownertypes.SearchOwnersInput{Query: "bell"})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	got := make([][2]string, 0, len(rows))
	for _, r := range rows {
		got = append(got, [2]string{r.Owner.Name, r.Pet.Name})
	}
	require.Equal(t, [][2]string{
		{"Ann Bell", "Mimi"},
		{"Ann Bell", "Rex"},
		{"Tom Bell", "Bantay"},
	}, got)
	require.Equal(t, "1980-05-02", rows[0].Owner.BirthdateString())
}

func TestSearchOwners_OwnerWithoutPets(t *testing.T) {
	svc := seed(t)

	rows, err := svc.SearchOwners(context.Background(), ownertypes.SearchOwnersInput{Query: "  LIM "})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Cara Lim", rows[0].Owner.Name)
	require.Nil(t, rows[0].Pet)
}

func TestSearchOwners_DirectoryFailure(t *testing.T) {
	svc := NewService(ownermemory.NewRepository(), failingPets{})
	_, err := svc.CreateOwner(context.Background(), ownertypes.CreateOwnerInput{Name: "Ann Bell"})
	require.NoError(t, err)

	_, err = svc.SearchOwners(context.Background(), ownertypes.SearchOwnersInput{Query: "ann"})
	require.EqualError(t, err, "pets unavailable")
}

func TestCreateOwner_Validation(t *testing.T) {
	svc := NewService(ownermemory.NewRepository(), nil).
		WithClock(func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) })

	_, err := svc.CreateOwner(context.Background(), ownertypes.CreateOwnerInput{Name: " "})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateOwner(context.Background(), ownertypes.CreateOwnerInput{Name: "Ann", Birthdate: "2030-01-01"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateOwner(context.Background(), ownertypes.CreateOwnerInput{Name: "Ann", Birthdate: "soon"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetOwner(t *testing.T) {
	svc := NewService(ownermemory.NewRepository(), nil)
	created, err := svc.CreateOwner(context.Background(), ownertypes.CreateOwnerInput{Name: "Ann Bell"})
	require.NoError(t, err)

	found, err := svc.GetOwner(context.Background(), ownertypes.OwnerIdentifier{ID: created.Owner.ID})
	require.NoError(t, err)
	require.Equal(t, "Ann Bell", found.Owner.Name)

	_, err = svc.GetOwner(context.Background(), ownertypes.OwnerIdentifier{ID: 99})
	require.ErrorIs(t, err, ports.ErrNotFound)
}
