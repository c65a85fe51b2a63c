package workflows

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	recordmemory "github.com/Apurer/go-vet-office/internal/domains/records/adapters/memory"
	recordapp "github.com/Apurer/go-vet-office/internal/domains/records/application"
	recordtypes "github.com/Apurer/go-vet-office/internal/domains/records/application/types"
	"github.com/Apurer/go-vet-office/internal/domains/records/domain"
	recordactivities "github.com/Apurer/go-vet-office/internal/platform/temporal/activities/records"
)

func TestInlineRecordWorkflows_Submit(t *testing.T) {
	orch := NewInlineRecordWorkflows(recordapp.NewService(recordmemory.NewRepository()))

	proj, err := orch.SubmitRecord(context.Background(), recordtypes.SubmitRecordInput{Envelope: domain.Envelope{
		Kind: domain.KindAppointment,
		Appointment: &domain.Appointment{
			Patient:     domain.Patient{OwnerName: "Ann Bell", PetName: "Rex"},
			ScheduledAt: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC),
		},
	}})
	require.NoError(t, err)
	require.Equal(t, domain.KindAppointment, proj.Kind)
}

func TestInlineRecordWorkflows_NotConfigured(t *testing.T) {
	var orch *InlineRecordWorkflows
	_, err := orch.SubmitRecord(context.Background(), recordtypes.SubmitRecordInput{})
	require.Error(t, err)

	_, err = NewTemporalRecordWorkflows(nil).SubmitRecord(context.Background(), recordtypes.SubmitRecordInput{})
	require.Error(t, err)
}

func TestUnwrapWorkflowError(t *testing.T) {
	invalid := temporal.NewNonRetryableApplicationError("pet name is required", recordactivities.InvalidInputErrorType, nil)
	require.ErrorIs(t, unwrapWorkflowError(invalid), recordapp.ErrInvalidInput)

	other := errors.New("boom")
	require.Equal(t, other, unwrapWorkflowError(other))
}
