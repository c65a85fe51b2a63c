//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	petspostgres "github.com/Apurer/go-vet-office/internal/domains/pets/adapters/persistence/postgres"
	"github.com/Apurer/go-vet-office/internal/domains/pets/domain"
	"github.com/Apurer/go-vet-office/internal/domains/pets/ports"
	"github.com/Apurer/go-vet-office/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("vetoffice_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func newPet(t *testing.T, name, owner string) *domain.Pet {
	t.Helper()
	pet, err := domain.NewPet(0, name, owner)
	require.NoError(t, err)
	return pet
}

func TestPostgresRepository_SaveAssignsIDAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := petspostgres.NewRepository(db)
	ctx := context.Background()

	pet := newPet(t, "Rex", "Ann Bell")
	pet.Describe("Dog", "Aspin", "Brown")
	pet.UpdateSex("m")
	pet.UpdateReproductiveStatus("neutered")
	dob := time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, pet.UpdateBirthDate(&dob, time.Now()))

	saved, err := repo.Save(ctx, pet)
	require.NoError(t, err)
	assert.NotZero(t, saved.Entity.ID)
	assert.False(t, saved.Metadata.CreatedAt.IsZero())

	retrieved, err := repo.GetByID(ctx, saved.Entity.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rex", retrieved.Entity.Name)
	assert.Equal(t, "Male", retrieved.Entity.Gender)
	assert.Equal(t, "Castrated/Spayed", retrieved.Entity.ReproductiveStatus)
	assert.Equal(t, "2020-01-15", retrieved.Entity.BirthDateString())
}

func TestPostgresRepository_ListFiltersByOwner(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := petspostgres.NewRepository(db)
	ctx := context.Background()

	for _, p := range []struct{ name, owner string }{
		{"Mimi", "Ann Bell"},
		{"Rex", "Ann Bell"},
		{"Bantay", "Tom Bell"},
	} {
		_, err := repo.Save(ctx, newPet(t, p.name, p.owner))
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, ports.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	anns, err := repo.List(ctx, ports.ListFilter{OwnerName: "Ann Bell"})
	require.NoError(t, err)
	require.Len(t, anns, 2)
	assert.Equal(t, "Mimi", anns[0].Entity.Name)
	assert.Equal(t, "Rex", anns[1].Entity.Name)
}

func TestPostgresRepository_Delete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := petspostgres.NewRepository(db)
	ctx := context.Background()

	saved, err := repo.Save(ctx, newPet(t, "ToDelete", "Ann Bell"))
	require.NoError(t, err)

	err = repo.Delete(ctx, saved.Entity.ID)
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, saved.Entity.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	err = repo.Delete(ctx, saved.Entity.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresRepository_Update(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := petspostgres.NewRepository(db)
	ctx := context.Background()

	saved, err := repo.Save(ctx, newPet(t, "Original Name", "Ann Bell"))
	require.NoError(t, err)
	originalCreatedAt := saved.Metadata.CreatedAt

	time.Sleep(10 * time.Millisecond)

	pet := saved.Entity
	require.NoError(t, pet.Rename("Updated Name"))
	pet.UpdateReproductiveStatus("intact")
	updated, err := repo.Save(ctx, pet)
	require.NoError(t, err)

	assert.Equal(t, "Updated Name", updated.Entity.Name)
	assert.Equal(t, "Intact", updated.Entity.ReproductiveStatus)
	assert.Equal(t, originalCreatedAt.Unix(), updated.Metadata.CreatedAt.Unix())
	assert.True(t, updated.Metadata.UpdatedAt.After(originalCreatedAt))
}
