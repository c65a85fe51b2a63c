package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	recordapp "github.com/Apurer/go-vet-office/internal/domains/records/application"
	recordtypes "github.com/Apurer/go-vet-office/internal/domains/records/application/types"
	"github.com/Apurer/go-vet-office/internal/domains/records/ports"
	recordactivities "github.com/Apurer/go-vet-office/internal/platform/temporal/activities/records"
	recordworkflows "github.com/Apurer/go-vet-office/internal/platform/temporal/workflows/records"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalRecordWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineRecordWorkflows)(nil)
)

// TemporalRecordWorkflows starts record workflows on a Temporal cluster.
type TemporalRecordWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalRecordWorkflows wires a Temporal client into the orchestrator.
func NewTemporalRecordWorkflows(c client.Client) *TemporalRecordWorkflows {
	return &TemporalRecordWorkflows{client: c, taskQueue: recordworkflows.RecordSubmissionTaskQueue}
}

// SubmitRecord runs the submission workflow and waits for its result. The
// submission ID doubles as the workflow ID, so resubmitting the same ID
// joins the existing run instead of writing twice.
func (o *TemporalRecordWorkflows) SubmitRecord(ctx context.Context, input recordtypes.SubmitRecordInput) (*recordtypes.RecordProjection, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal record workflows not configured")
	}
	if input.ID == uuid.Nil {
		input.ID = uuid.New()
	}
	workflowID := "record-submission-" + input.ID.String()
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		recordworkflows.RecordSubmissionWorkflow,
		recordworkflows.RecordSubmissionWorkflowInput{Command: input, TraceID: workflowTraceID(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return nil, err
		}
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var projection recordtypes.RecordProjection
	if err := run.Get(ctx, &projection); err != nil {
		return nil, unwrapWorkflowError(err)
	}
	return &projection, nil
}

// InlineRecordWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineRecordWorkflows struct {
	service ports.Service
}

// NewInlineRecordWorkflows wraps the records service for synchronous execution.
func NewInlineRecordWorkflows(service ports.Service) *InlineRecordWorkflows {
	return &InlineRecordWorkflows{service: service}
}

// SubmitRecord delegates to the application service.
func (o *InlineRecordWorkflows) SubmitRecord(ctx context.Context, input recordtypes.SubmitRecordInput) (*recordtypes.RecordProjection, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline record workflows not configured")
	}
	return o.service.Submit(ctx, input)
}

// unwrapWorkflowError restores ErrInvalidInput for validation failures
// raised inside the activity.
func unwrapWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) && appErr.Type() == recordactivities.InvalidInputErrorType {
		return fmt.Errorf("%w: %s", recordapp.ErrInvalidInput, appErr.Message())
	}
	return err
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
