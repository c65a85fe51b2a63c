package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-vet-office/internal/domains/records/domain"
	"github.com/Apurer/go-vet-office/internal/shared/projection"
)

// SubmitRecordInput carries one form submission. A nil ID lets the service
// assign one; callers that retry (workflows) pin it so the write is
// idempotent.
type SubmitRecordInput struct {
	ID       uuid.UUID
	Envelope domain.Envelope
}

// RecordIdentifier references a submission.
type RecordIdentifier struct {
	ID uuid.UUID
}

// ListRecordsInput filters submissions. Zero values match everything.
type ListRecordsInput struct {
	Kind      domain.Kind
	OwnerName string
	Vaccine   string
}

// RecordMetadata captures persistence timestamps.
type RecordMetadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecordProjection is the serialisable view of a submission. It travels
// through Temporal payloads, hence the envelope instead of the Record
// interface.
type RecordProjection struct {
	ID          uuid.UUID
	Kind        domain.Kind
	SubmittedAt time.Time
	Envelope    domain.Envelope
	Metadata    RecordMetadata
}

// Record unwraps the envelope.
func (p *RecordProjection) Record() (domain.Record, error) {
	return p.Envelope.Record()
}

// FromProjection converts a repository projection.
func FromProjection(p *projection.Projection[*domain.Submission]) (*RecordProjection, error) {
	if p == nil || p.Entity == nil {
		return nil, nil
	}
	env, err := domain.Wrap(p.Entity.Record)
	if err != nil {
		return nil, err
	}
	return &RecordProjection{
		ID:          p.Entity.ID,
		Kind:        env.Kind,
		SubmittedAt: p.Entity.SubmittedAt,
		Envelope:    env,
		Metadata:    RecordMetadata{CreatedAt: p.Metadata.CreatedAt, UpdatedAt: p.Metadata.UpdatedAt},
	}, nil
}
