package records

import (
	"go.temporal.io/sdk/workflow"

	recordtypes "github.com/Apurer/go-vet-office/internal/domains/records/application/types"
	"github.com/Apurer/go-vet-office/internal/platform/temporal/sequences"
)

const (
	// RecordSubmissionWorkflowName is the public identifier for registering the workflow.
	RecordSubmissionWorkflowName = "records.workflows.Submission"
	// RecordSubmissionTaskQueue is the queue consumed by the worker processing record workflows.
	RecordSubmissionTaskQueue = "RECORD_SUBMISSION"
)

// RecordSubmissionWorkflowInput captures the payload of one submission.
type RecordSubmissionWorkflowInput struct {
	Command recordtypes.SubmitRecordInput
	TraceID string
}

// RecordSubmissionWorkflow persists a submitted form record.
func RecordSubmissionWorkflow(ctx workflow.Context, input RecordSubmissionWorkflowInput) (*recordtypes.RecordProjection, error) {
	logger := workflow.GetLogger(ctx)
	recordID := input.Command.ID.String()
	logger.Info("RecordSubmissionWorkflow started", withTraceID(input.TraceID, "recordId", recordID, "kind", string(input.Command.Envelope.Kind))...)
	projection, err := sequences.RunRecordPersistenceSequence(ctx, input.Command)
	if err != nil {
		logger.Error("RecordSubmissionWorkflow failed", withTraceID(input.TraceID, "recordId", recordID, "error", err)...)
		return nil, err
	}
	logger.Info("RecordSubmissionWorkflow completed", withTraceID(input.TraceID, "recordId", recordID)...)
	return projection, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
