package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	recordtypes "github.com/Apurer/go-vet-office/internal/domains/records/application/types"
	recordactivities "github.com/Apurer/go-vet-office/internal/platform/temporal/activities/records"
)

// RunRecordPersistenceSequence executes the activities needed to persist a submission.
func RunRecordPersistenceSequence(ctx workflow.Context, input recordtypes.SubmitRecordInput) (*recordtypes.RecordProjection, error) {
	logger := workflow.GetLogger(ctx)
	recordID := input.ID.String()
	logger.Info("record persistence sequence started", "recordId", recordID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        2 * time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        10 * time.Second,
			MaximumAttempts:        5,
			NonRetryableErrorTypes: []string{recordactivities.InvalidInputErrorType},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var projection recordtypes.RecordProjection
	err := workflow.ExecuteActivity(ctx, recordactivities.PersistRecordActivityName, input).Get(ctx, &projection)
	if err != nil {
		logger.Error("record persistence sequence failed", "recordId", recordID, "error", err)
		return nil, err
	}
	logger.Info("record persistence sequence completed", "recordId", projection.ID.String())
	return &projection, nil
}
