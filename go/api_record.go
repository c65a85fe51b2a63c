package vetserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	recordhttpmapper "github.com/Apurer/go-vet-office/internal/domains/records/adapters/http/mapper"
	recordtypes "github.com/Apurer/go-vet-office/internal/domains/records/application/types"
	"github.com/Apurer/go-vet-office/internal/domains/records/domain"
	recordsports "github.com/Apurer/go-vet-office/internal/domains/records/ports"
)

// RecordAPI wires HTTP transport with the records bounded context and its workflows.
type RecordAPI struct {
	service   recordsports.Service
	workflows recordsports.WorkflowOrchestrator
}

// NewRecordAPI creates a RecordAPI. workflows may be nil, in which case
// submissions go straight to the service.
func NewRecordAPI(service recordsports.Service, workflows recordsports.WorkflowOrchestrator) RecordAPI {
	return RecordAPI{service: service, workflows: workflows}
}

// Post /v1/records
// Submit a form record
func (api *RecordAPI) SubmitRecord(c *gin.Context) {
	var payload recordhttpmapper.SubmitRecord
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	input, err := recordhttpmapper.ToSubmitRecordInput(payload)
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	saved, err := api.submit(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recordhttpmapper.FromProjection(saved))
}

func (api *RecordAPI) submit(ctx context.Context, input recordtypes.SubmitRecordInput) (*recordtypes.RecordProjection, error) {
	if api.workflows != nil {
		return api.workflows.SubmitRecord(ctx, input)
	}
	return api.service.Submit(ctx, input)
}

// Get /v1/records
// List records by kind, owner or vaccine
func (api *RecordAPI) ListRecords(c *gin.Context) {
	input := recordtypes.ListRecordsInput{OwnerName: c.Query("owner"), Vaccine: c.Query("vaccine")}
	if raw := c.Query("kind"); raw != "" {
		kind, err := domain.ParseKind(raw)
		if err != nil {
			responder.ValidationFailed(c, map[string]string{"kind": err.Error()})
			return
		}
		input.Kind = kind
	}
	result, err := api.service.List(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, recordhttpmapper.FromProjectionList(result))
}

// Get /v1/records/:recordId
// Find record by ID
func (api *RecordAPI) GetRecord(c *gin.Context) {
	id, err := uuid.Parse(c.Param("recordId"))
	if err != nil {
		respondBadRequest(c, fmt.Errorf("recordId: %w", err))
		return
	}
	found, err := api.service.Get(c.Request.Context(), recordtypes.RecordIdentifier{ID: id})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, recordhttpmapper.FromProjection(found))
}
