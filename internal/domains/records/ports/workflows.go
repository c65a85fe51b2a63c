package ports

import (
	"context"

	recordtypes "github.com/Apurer/go-vet-office/internal/domains/records/application/types"
)

// WorkflowOrchestrator runs record submissions, durably or inline.
type WorkflowOrchestrator interface {
	SubmitRecord(ctx context.Context, input recordtypes.SubmitRecordInput) (*recordtypes.RecordProjection, error)
}
