// Package migrations owns the database schema of the vet office backend.
package migrations

import (
	"gorm.io/gorm"

	ownerspostgres "github.com/Apurer/go-vet-office/internal/domains/owners/adapters/persistence/postgres"
	petspostgres "github.com/Apurer/go-vet-office/internal/domains/pets/adapters/persistence/postgres"
	recordspostgres "github.com/Apurer/go-vet-office/internal/domains/records/adapters/persistence/postgres"
)

// statements run after AutoMigrate. They must be idempotent.
var statements = []string{
	`CREATE INDEX IF NOT EXISTS idx_owners_name_lower ON owners (lower(name))`,
	`CREATE INDEX IF NOT EXISTS idx_records_vaccines ON records USING GIN (vaccines)`,
}

// Run applies the schema for every bounded context. Repositories never
// migrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := db.AutoMigrate(
		&ownerspostgres.OwnerRecord{},
		&petspostgres.PetRecord{},
		&recordspostgres.RecordRow{},
	); err != nil {
		return err
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
