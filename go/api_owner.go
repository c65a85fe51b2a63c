package vetserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ownerhttpmapper "github.com/Apurer/go-vet-office/internal/domains/owners/adapters/http/mapper"
	ownertypes "github.com/Apurer/go-vet-office/internal/domains/owners/application/types"
	ownersports "github.com/Apurer/go-vet-office/internal/domains/owners/ports"
)

// OwnerAPI wires HTTP transport with the owners bounded context.
type OwnerAPI struct {
	service ownersports.Service
}

// NewOwnerAPI creates an OwnerAPI backed by the provided service.
func NewOwnerAPI(service ownersports.Service) OwnerAPI {
	return OwnerAPI{service: service}
}

// Get /v1/owners/search
// Owner and pet rows whose owner name contains q
func (api *OwnerAPI) SearchOwners(c *gin.Context) {
	rows, err := api.service.SearchOwners(c.Request.Context(), ownertypes.SearchOwnersInput{Query: c.Query("q")})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ownerhttpmapper.FromMatches(rows))
}

// Post /v1/owners
// Register an owner
func (api *OwnerAPI) CreateOwner(c *gin.Context) {
	var payload ownerhttpmapper.CreateOwner
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	created, err := api.service.CreateOwner(c.Request.Context(), ownerhttpmapper.ToCreateOwnerInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ownerhttpmapper.FromProjection(created))
}

// Get /v1/owners/:ownerId
// Find owner by ID
func (api *OwnerAPI) GetOwner(c *gin.Context) {
	id, ok := parseIDParam(c, "ownerId")
	if !ok {
		return
	}
	found, err := api.service.GetOwner(c.Request.Context(), ownertypes.OwnerIdentifier{ID: id})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ownerhttpmapper.FromProjection(found))
}
