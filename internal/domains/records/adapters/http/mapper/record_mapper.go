package mapper

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	recordtypes "github.com/Apurer/go-vet-office/internal/domains/records/application/types"
	"github.com/Apurer/go-vet-office/internal/domains/records/domain"
)

// SubmitRecord is the inbound payload of POST /v1/records: the record
// envelope plus an optional client-chosen ID for safe retries.
type SubmitRecord struct {
	ID string `json:"id,omitempty"`
	domain.Envelope
}

// Record is the HTTP representation of a stored submission.
type Record struct {
	ID          string    `json:"id"`
	SubmittedAt time.Time `json:"submittedAt"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
	domain.Envelope
}

// ToSubmitRecordInput validates the optional ID and converts the payload.
func ToSubmitRecordInput(in SubmitRecord) (recordtypes.SubmitRecordInput, error) {
	input := recordtypes.SubmitRecordInput{Envelope: in.Envelope}
	if raw := strings.TrimSpace(in.ID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return recordtypes.SubmitRecordInput{}, fmt.Errorf("invalid record id %q: %w", raw, err)
		}
		input.ID = id
	}
	return input, nil
}

// FromProjection maps a projection to its transport form.
func FromProjection(p *recordtypes.RecordProjection) Record {
	return Record{
		ID:          p.ID.String(),
		SubmittedAt: p.SubmittedAt,
		CreatedAt:   p.Metadata.CreatedAt,
		UpdatedAt:   p.Metadata.UpdatedAt,
		Envelope:    p.Envelope,
	}
}

// FromProjectionList maps projections, keeping their order.
func FromProjectionList(list []*recordtypes.RecordProjection) []Record {
	out := make([]Record, 0, len(list))
	for _, p := range list {
		out = append(out, FromProjection(p))
	}
	return out
}
