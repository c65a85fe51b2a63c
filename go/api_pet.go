package vetserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	pethttpmapper "github.com/Apurer/go-vet-office/internal/domains/pets/adapters/http/mapper"
	petstypes "github.com/Apurer/go-vet-office/internal/domains/pets/application/types"
	petsports "github.com/Apurer/go-vet-office/internal/domains/pets/ports"
	"github.com/Apurer/go-vet-office/internal/shared/age"
)

// PetAPI wires HTTP transport with the pets bounded context.
type PetAPI struct {
	service petsports.Service
	ages    age.Deriver
}

// NewPetAPI creates a PetAPI backed by the provided service.
func NewPetAPI(service petsports.Service) PetAPI {
	return PetAPI{service: service, ages: age.Deriver{Now: time.Now}}
}

// WithClock fixes the clock used for the derived age in responses.
func (api PetAPI) WithClock(now func() time.Time) PetAPI {
	api.ages = age.Deriver{Now: now}
	return api
}

// Get /v1/pets
// List pets, optionally of one owner
func (api *PetAPI) ListPets(c *gin.Context) {
	result, err := api.service.List(c.Request.Context(), petstypes.ListPetsInput{OwnerName: c.Query("owner")})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromProjectionList(result, api.ages))
}

// Post /v1/pets
// Register a pet
func (api *PetAPI) AddPet(c *gin.Context) {
	var payload pethttpmapper.MutationPet
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	saved, err := api.service.AddPet(c.Request.Context(), pethttpmapper.ToAddPetInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pethttpmapper.FromProjection(saved, api.ages))
}

// Get /v1/pets/:petId
// Find pet by ID
func (api *PetAPI) GetPetById(c *gin.Context) {
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	pet, err := api.service.GetByID(c.Request.Context(), petstypes.PetIdentifier{ID: id})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromProjection(pet, api.ages))
}

// Put /v1/pets/:petId
// Replace a pet
func (api *PetAPI) UpdatePet(c *gin.Context) {
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	var payload pethttpmapper.MutationPet
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	updated, err := api.service.UpdatePet(c.Request.Context(), pethttpmapper.ToUpdatePetInput(id, payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromProjection(updated, api.ages))
}

// Delete /v1/pets/:petId
// Deletes a pet
func (api *PetAPI) DeletePet(c *gin.Context) {
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), petstypes.PetIdentifier{ID: id}); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
