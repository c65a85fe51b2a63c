package records

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	recordapp "github.com/Apurer/go-vet-office/internal/domains/records/application"
	recordtypes "github.com/Apurer/go-vet-office/internal/domains/records/application/types"
	recordports "github.com/Apurer/go-vet-office/internal/domains/records/ports"
)

const (
	// PersistRecordActivityName stores a submitted record.
	PersistRecordActivityName = "records.activities.PersistRecord"
	// InvalidInputErrorType marks failures that retrying cannot fix.
	InvalidInputErrorType = "InvalidRecordInput"
)

// Activities groups activities that operate on the records bounded context.
type Activities struct {
	service recordports.Service
}

// NewActivities wires the records service into the Temporal activities bundle.
func NewActivities(service recordports.Service) *Activities {
	return &Activities{service: service}
}

// PersistRecord stores a submission. The input ID is fixed by the caller so
// retried attempts overwrite the same row.
func (a *Activities) PersistRecord(ctx context.Context, input recordtypes.SubmitRecordInput) (*recordtypes.RecordProjection, error) {
	logger := activity.GetLogger(ctx)
	recordID := input.ID.String()
	if a == nil || a.service == nil {
		logger.Error("record persist activity not initialized", "recordId", recordID)
		return nil, errors.New("record persist activity not initialized")
	}
	logger.Info("PersistRecord activity started", "recordId", recordID, "kind", string(input.Envelope.Kind))
	projection, err := a.service.Submit(ctx, input)
	if err != nil {
		logger.Error("PersistRecord activity failed", "recordId", recordID, "error", err)
		if errors.Is(err, recordapp.ErrInvalidInput) {
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), InvalidInputErrorType, err)
		}
		return nil, err
	}
	logger.Info("PersistRecord activity completed", "recordId", projection.ID.String())
	return projection, nil
}
