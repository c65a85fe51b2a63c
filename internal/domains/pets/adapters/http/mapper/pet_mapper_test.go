package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	petstypes "github.com/Apurer/go-vet-office/internal/domains/pets/application/types"
	"github.com/Apurer/go-vet-office/internal/domains/pets/domain"
	"github.com/Apurer/go-vet-office/internal/shared/age"
)

func TestFromProjection_DerivesAge(t *testing.T) {
	dob := time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	deriver := age.Deriver{Now: func() time.Time { return time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC) }}

	got := FromProjection(&petstypes.PetProjection{
		Pet:      &domain.Pet{ID: 3, Name: "Rex", OwnerName: "Ann Bell", DateOfBirth: &dob, Gender: domain.SexMale},
		Metadata: petstypes.PetMetadata{CreatedAt: created, UpdatedAt: created},
	}, deriver)

	assert.Equal(t, "2020-01-15", got.DateOfBirth)
	assert.Equal(t, "5 months", got.Age)
	assert.Equal(t, created, got.CreatedAt)
}

func TestFromDomainPet_UnknownBirthDate(t *testing.T) {
	got := FromDomainPet(&domain.Pet{ID: 1, Name: "Mimi", OwnerName: "Ann Bell"}, age.Deriver{})
	assert.Empty(t, got.DateOfBirth)
	assert.Empty(t, got.Age)
}

func TestToUpdatePetInput(t *testing.T) {
	in := ToUpdatePetInput(9, MutationPet{ID: 1, Name: "Rex", OwnerName: "Ann Bell", Gender: "m"})
	assert.Equal(t, int64(9), in.ID)
	assert.Equal(t, "m", in.Gender)
}
