package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-vet-office/internal/domains/owners/domain"
	"github.com/Apurer/go-vet-office/internal/domains/owners/ports"
	"github.com/Apurer/go-vet-office/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists owners in PostgreSQL.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// OwnerRecord is the row stored in the owners table.
type OwnerRecord struct {
	ID            int64      `gorm:"primaryKey;autoIncrement;column:id"`
	Name          string     `gorm:"column:name;not null;index"`
	ContactNumber string     `gorm:"column:contact_number"`
	Birthdate     *time.Time `gorm:"column:birthdate;type:date"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (OwnerRecord) TableName() string { return "owners" }

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Save inserts a new owner or updates an existing one.
func (r *Repository) Save(ctx context.Context, owner *domain.Owner) (*projection.Projection[*domain.Owner], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, errors.New("cannot save nil owner")
	}
	record := OwnerRecord{
		ID:            owner.ID,
		Name:          owner.Name,
		ContactNumber: owner.ContactNumber,
	}
	if owner.Birthdate != nil {
		b := owner.Birthdate.UTC()
		record.Birthdate = &b
	}
	if record.ID == 0 {
		if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
			return nil, err
		}
		return r.GetByID(ctx, record.ID)
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":           record.Name,
				"contact_number": record.ContactNumber,
				"birthdate":      record.Birthdate,
				"updated_at":     gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an owner by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Owner], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record OwnerRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toProjection(&record), nil
}

// Search matches owner names with ILIKE, treating the query literally.
func (r *Repository) Search(ctx context.Context, query string) ([]*projection.Projection[*domain.Owner], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	tx := r.db.WithContext(ctx).Order("name").Order("id")
	if q := strings.TrimSpace(query); q != "" {
		tx = tx.Where("name ILIKE ?", "%"+likeEscaper.Replace(q)+"%")
	}
	var records []OwnerRecord
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*projection.Projection[*domain.Owner], 0, len(records))
	for i := range records {
		list = append(list, toProjection(&records[i]))
	}
	return list, nil
}

func toProjection(record *OwnerRecord) *projection.Projection[*domain.Owner] {
	owner := &domain.Owner{
		ID:            record.ID,
		Name:          record.Name,
		ContactNumber: record.ContactNumber,
	}
	if record.Birthdate != nil {
		b := record.Birthdate.UTC()
		owner.Birthdate = &b
	}
	return &projection.Projection[*domain.Owner]{
		Entity:   owner,
		Metadata: projection.Metadata{CreatedAt: record.CreatedAt, UpdatedAt: record.UpdatedAt},
	}
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres repository not configured")
	}
	return nil
}
