package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	ownertypes "github.com/Apurer/go-vet-office/internal/domains/owners/application/types"
	pettypes "github.com/Apurer/go-vet-office/internal/domains/pets/application/types"
)

func TestBuildServicesFallsBackToMemory(t *testing.T) {
	ctx := context.Background()
	services, cleanup := BuildServices(ctx, "", nil)
	t.Cleanup(cleanup)
	require.False(t, services.Postgres)

	_, err := services.Owners.CreateOwner(ctx, ownertypes.CreateOwnerInput{Name: "Ann Bell"})
	require.NoError(t, err)
	_, err = services.Pets.AddPet(ctx, pettypes.AddPetInput{PetMutationInput: pettypes.PetMutationInput{Name: "Rex", OwnerName: "Ann Bell"}})
	require.NoError(t, err)

	rows, err := services.Owners.SearchOwners(ctx, ownertypes.SearchOwnersInput{Query: "ann"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Pet)
	require.Equal(t, "Rex", rows[0].Pet.Name)
}

func TestDialTemporalHonoursDisabledFlag(t *testing.T) {
	_, err := DialTemporal(Config{TemporalDisabled: true}, nil, "test")
	require.ErrorIs(t, err, ErrTemporalDisabled)
}
