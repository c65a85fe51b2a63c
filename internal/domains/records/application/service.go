package application

import (
	"context"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	recordtypes "github.com/Apurer/go-vet-office/internal/domains/records/application/types"
	"github.com/Apurer/go-vet-office/internal/domains/records/domain"
	"github.com/Apurer/go-vet-office/internal/domains/records/ports"
	"github.com/Apurer/go-vet-office/internal/shared/age"
)

// Service orchestrates record submissions.
type Service struct {
	repo    ports.Repository
	policy  *bluemonday.Policy
	deriver age.Deriver
	now     func() time.Time
}

// NewService wires the records service. Free text is stripped of markup
// with a strict bluemonday policy before it is stored.
func NewService(repo ports.Repository) *Service {
	return &Service{
		repo:    repo,
		policy:  bluemonday.StrictPolicy(),
		deriver: age.Deriver{Now: time.Now},
		now:     time.Now,
	}
}

// WithClock overrides the submission timestamp source.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
		s.deriver = age.Deriver{Now: now}
	}
	return s
}

// Submit validates, cleans and stores a record. A missing patient age is
// derived from the pet birthday against the record date.
func (s *Service) Submit(ctx context.Context, input recordtypes.SubmitRecordInput) (*recordtypes.RecordProjection, error) {
	record, err := input.Envelope.Record()
	if err != nil {
		return nil, mapError(err)
	}
	record = domain.MapText(record, s.sanitize)
	patient := record.PatientInfo()
	if patient.Age == "" && patient.PetBirthday != "" {
		reference := ""
		if d := record.Date(); !d.IsZero() {
			reference = d.Format(time.DateOnly)
		}
		patient.Age = s.deriver.Derive(patient.PetBirthday, reference)
		record = domain.WithPatient(record, patient)
	}
	sub, err := domain.NewSubmission(record, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	if input.ID != uuid.Nil {
		sub.ID = input.ID
	}
	saved, err := s.repo.Save(ctx, sub)
	if err != nil {
		return nil, mapError(err)
	}
	return recordtypes.FromProjection(saved)
}

// Get loads a submission.
func (s *Service) Get(ctx context.Context, input recordtypes.RecordIdentifier) (*recordtypes.RecordProjection, error) {
	found, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return recordtypes.FromProjection(found)
}

// List returns the submissions matching input, newest first.
func (s *Service) List(ctx context.Context, input recordtypes.ListRecordsInput) ([]*recordtypes.RecordProjection, error) {
	found, err := s.repo.List(ctx, ports.ListFilter{
		Kind:      input.Kind,
		OwnerName: strings.TrimSpace(input.OwnerName),
		Vaccine:   strings.TrimSpace(input.Vaccine),
	})
	if err != nil {
		return nil, mapError(err)
	}
	result := make([]*recordtypes.RecordProjection, 0, len(found))
	for _, p := range found {
		converted, err := recordtypes.FromProjection(p)
		if err != nil {
			return nil, err
		}
		result = append(result, converted)
	}
	return result, nil
}

// maxSanitizePasses bounds the decode and sanitise loop. Each pass peels
// one level of entity encoding.
const maxSanitizePasses = 8

// sanitize decodes entities before the policy sees the text, so encoded
// markup is stripped like raw markup, and repeats until the value is stable.
// The stored text is unescaped; if it never settles the escaped policy
// output is kept.
func (s *Service) sanitize(value string) string {
	if value == "" {
		return ""
	}
	current := value
	for pass := 0; pass < maxSanitizePasses; pass++ {
		next := html.UnescapeString(s.policy.Sanitize(html.UnescapeString(current)))
		if next == current {
			return strings.TrimSpace(next)
		}
		current = next
	}
	return strings.TrimSpace(s.policy.Sanitize(html.UnescapeString(current)))
}

var _ ports.Service = (*Service)(nil)
