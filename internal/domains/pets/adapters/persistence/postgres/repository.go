package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-vet-office/internal/domains/pets/domain"
	"github.com/Apurer/go-vet-office/internal/domains/pets/ports"
	"github.com/Apurer/go-vet-office/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists pets in PostgreSQL using GORM-mapped columns. The
// schema is owned by platform/migrations.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// PetRecord is the row stored in the pets table.
type PetRecord struct {
	ID                 int64      `gorm:"primaryKey;autoIncrement;column:id"`
	Name               string     `gorm:"column:name;not null"`
	OwnerName          string     `gorm:"column:owner_name;not null;index"`
	Species            string     `gorm:"column:species"`
	Breed              string     `gorm:"column:breed"`
	Color              string     `gorm:"column:color"`
	DateOfBirth        *time.Time `gorm:"column:date_of_birth;type:date"`
	Gender             string     `gorm:"column:gender;type:varchar(32)"`
	ReproductiveStatus string     `gorm:"column:reproductive_status;type:varchar(64)"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (PetRecord) TableName() string { return "pets" }

func newPetRecord(p *domain.Pet) PetRecord {
	rec := PetRecord{
		ID:                 p.ID,
		Name:               p.Name,
		OwnerName:          p.OwnerName,
		Species:            p.Species,
		Breed:              p.Breed,
		Color:              p.Color,
		Gender:             p.Gender,
		ReproductiveStatus: p.ReproductiveStatus,
	}
	if p.DateOfBirth != nil {
		dob := p.DateOfBirth.UTC()
		rec.DateOfBirth = &dob
	}
	return rec
}

// Save inserts a new pet (letting the database assign the ID when it is
// zero) or updates an existing one.
func (r *Repository) Save(ctx context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}
	record := newPetRecord(pet)
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
				"name":                record.Name,
				"owner_name":          record.OwnerName,
				"species":             record.Species,
				"breed":               record.Breed,
				"color":               record.Color,
				"date_of_birth":       record.DateOfBirth,
				"gender":              record.Gender,
				"reproductive_status": record.ReproductiveStatus,
				"updated_at":          gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a pet by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Pet], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record PetRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toProjection(&record), nil
}

// Delete removes a pet by identifier.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&PetRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns the pets matching filter ordered by name.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*projection.Projection[*domain.Pet], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("name").Order("id")
	if owner := strings.TrimSpace(filter.OwnerName); owner != "" {
		query = query.Where("owner_name = ?", owner)
	}
	var records []PetRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*projection.Projection[*domain.Pet], 0, len(records))
	for i := range records {
		list = append(list, toProjection(&records[i]))
	}
	return list, nil
}

func toProjection(record *PetRecord) *projection.Projection[*domain.Pet] {
	return &projection.Projection[*domain.Pet]{
		Entity:   record.toDomain(),
		Metadata: projection.Metadata{CreatedAt: record.CreatedAt, UpdatedAt: record.UpdatedAt},
	}
}

func (r *PetRecord) toDomain() *domain.Pet {
	pet := &domain.Pet{
		ID:                 r.ID,
		Name:               r.Name,
		OwnerName:          r.OwnerName,
		Species:            r.Species,
		Breed:              r.Breed,
		Color:              r.Color,
		Gender:             r.Gender,
		ReproductiveStatus: r.ReproductiveStatus,
	}
	if r.DateOfBirth != nil {
		dob := r.DateOfBirth.UTC()
		pet.DateOfBirth = &dob
	}
	return pet
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres repository not configured")
	}
	return nil
}
