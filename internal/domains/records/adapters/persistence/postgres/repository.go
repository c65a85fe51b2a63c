package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-vet-office/internal/domains/records/domain"
	"github.com/Apurer/go-vet-office/internal/domains/records/ports"
	"github.com/Apurer/go-vet-office/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists submissions in PostgreSQL. The full record lives in a
// jsonb envelope; kind, owner, pet, date and the list fields are projected
// into columns for filtering.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// RecordRow is the row stored in the records table.
type RecordRow struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;column:id"`
	Kind        string         `gorm:"column:kind;type:varchar(32);not null;index"`
	OwnerName   string         `gorm:"column:owner_name;not null;index"`
	PetName     string         `gorm:"column:pet_name;not null"`
	RecordDate  time.Time      `gorm:"column:record_date;not null"`
	SubmittedAt time.Time      `gorm:"column:submitted_at;not null"`
	Vaccines    pq.StringArray `gorm:"column:vaccines;type:text[]"`
	Documents   pq.StringArray `gorm:"column:documents;type:text[]"`
	Payload     string         `gorm:"column:payload;type:jsonb;not null"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (RecordRow) TableName() string { return "records" }

func newRecordRow(sub *domain.Submission) (RecordRow, error) {
	payload, err := domain.MarshalRecord(sub.Record)
	if err != nil {
		return RecordRow{}, err
	}
	patient := sub.Record.PatientInfo()
	row := RecordRow{
		ID:          sub.ID,
		Kind:        string(sub.Record.Kind()),
		OwnerName:   patient.OwnerName,
		PetName:     patient.PetName,
		RecordDate:  sub.Record.Date().UTC(),
		SubmittedAt: sub.SubmittedAt.UTC(),
		Payload:     string(payload),
	}
	switch r := sub.Record.(type) {
	case domain.Vaccination:
		row.Vaccines = pq.StringArray(r.Vaccines)
	case domain.ShippingPermit:
		row.Documents = pq.StringArray(r.Documents)
	}
	return row, nil
}

// Save upserts a submission by ID.
func (r *Repository) Save(ctx context.Context, sub *domain.Submission) (*projection.Projection[*domain.Submission], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if sub == nil || sub.ID == uuid.Nil {
		return nil, errors.New("cannot save submission without id")
	}
	row, err := newRecordRow(sub)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"kind":         row.Kind,
				"owner_name":   row.OwnerName,
				"pet_name":     row.PetName,
				"record_date":  row.RecordDate,
				"submitted_at": row.SubmittedAt,
				"vaccines":     row.Vaccines,
				"documents":    row.Documents,
				"payload":      row.Payload,
				"updated_at":   gorm.Expr("NOW()"),
			}),
		}).Create(&row).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, row.ID)
}

// GetByID fetches a submission.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.Submission], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var row RecordRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return row.toProjection()
}

// List returns matching submissions, newest first.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*projection.Projection[*domain.Submission], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("submitted_at DESC").Order("id")
	if filter.Kind != "" {
		query = query.Where("kind = ?", string(filter.Kind))
	}
	if filter.OwnerName != "" {
		query = query.Where("owner_name = ?", filter.OwnerName)
	}
	if filter.Vaccine != "" {
		query = query.Where("? = ANY(vaccines)", filter.Vaccine)
	}
	var rows []RecordRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	list := make([]*projection.Projection[*domain.Submission], 0, len(rows))
	for i := range rows {
		p, err := rows[i].toProjection()
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, nil
}

func (row *RecordRow) toProjection() (*projection.Projection[*domain.Submission], error) {
	record, err := domain.UnmarshalRecord([]byte(row.Payload))
	if err != nil {
		return nil, err
	}
	return &projection.Projection[*domain.Submission]{
		Entity:   &domain.Submission{ID: row.ID, SubmittedAt: row.SubmittedAt.UTC(), Record: record},
		Metadata: projection.Metadata{CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt},
	}, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres repository not configured")
	}
	return nil
}
