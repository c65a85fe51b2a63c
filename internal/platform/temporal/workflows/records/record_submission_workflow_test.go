package records

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/converter"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	recordmemory "github.com/Apurer/go-vet-office/internal/domains/records/adapters/memory"
	recordapp "github.com/Apurer/go-vet-office/internal/domains/records/application"
	recordtypes "github.com/Apurer/go-vet-office/internal/domains/records/application/types"
	"github.com/Apurer/go-vet-office/internal/domains/records/domain"
	recordactivities "github.com/Apurer/go-vet-office/internal/platform/temporal/activities/records"
)

func newEnv(t *testing.T) (*testsuite.TestWorkflowEnvironment, *int) {
	t.Helper()
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	acts := recordactivities.NewActivities(recordapp.NewService(recordmemory.NewRepository()))
	env.RegisterActivityWithOptions(acts.PersistRecord, activity.RegisterOptions{Name: recordactivities.PersistRecordActivityName})
	attempts := 0
	env.SetOnActivityStartedListener(func(*activity.Info, context.Context, converter.EncodedValues) {
		attempts++
	})
	return env, &attempts
}

func appointment(owner string) domain.Envelope {
	return domain.Envelope{
		Kind: domain.KindAppointment,
		Appointment: &domain.Appointment{
			Patient:     domain.Patient{OwnerName: owner, PetName: "Rex"},
			ScheduledAt: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC),
			Reason:      "Check-up",
		},
	}
}

func TestRecordSubmissionWorkflow_PersistsRecord(t *testing.T) {
	env, attempts := newEnv(t)
	id := uuid.New()

	env.ExecuteWorkflow(RecordSubmissionWorkflow, RecordSubmissionWorkflowInput{
		Command: recordtypes.SubmitRecordInput{ID: id, Envelope: appointment("Ann Bell")},
		TraceID: "trace-1",
	})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var out recordtypes.RecordProjection
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, id, out.ID)
	require.Equal(t, domain.KindAppointment, out.Kind)
	require.Equal(t, "Check-up", out.Envelope.Appointment.Reason)
	require.Equal(t, 1, *attempts)
}

func TestRecordSubmissionWorkflow_InvalidInputIsNotRetried(t *testing.T) {
	env, attempts := newEnv(t)

	env.ExecuteWorkflow(RecordSubmissionWorkflow, RecordSubmissionWorkflowInput{
		Command: recordtypes.SubmitRecordInput{ID: uuid.New(), Envelope: appointment(" ")},
	})

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, recordactivities.InvalidInputErrorType, appErr.Type())
	require.Equal(t, 1, *attempts)
}
