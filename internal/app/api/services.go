package api

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	ownermemory "github.com/Apurer/go-vet-office/internal/domains/owners/adapters/memory"
	ownersobs "github.com/Apurer/go-vet-office/internal/domains/owners/adapters/observability"
	ownerpostgres "github.com/Apurer/go-vet-office/internal/domains/owners/adapters/persistence/postgres"
	"github.com/Apurer/go-vet-office/internal/domains/owners/adapters/petdirectory"
	ownersapp "github.com/Apurer/go-vet-office/internal/domains/owners/application"
	ownersports "github.com/Apurer/go-vet-office/internal/domains/owners/ports"
	petmemory "github.com/Apurer/go-vet-office/internal/domains/pets/adapters/memory"
	petsobs "github.com/Apurer/go-vet-office/internal/domains/pets/adapters/observability"
	petpostgres "github.com/Apurer/go-vet-office/internal/domains/pets/adapters/persistence/postgres"
	petsapp "github.com/Apurer/go-vet-office/internal/domains/pets/application"
	petsports "github.com/Apurer/go-vet-office/internal/domains/pets/ports"
	recordmemory "github.com/Apurer/go-vet-office/internal/domains/records/adapters/memory"
	recordsobs "github.com/Apurer/go-vet-office/internal/domains/records/adapters/observability"
	recordpostgres "github.com/Apurer/go-vet-office/internal/domains/records/adapters/persistence/postgres"
	recordsapp "github.com/Apurer/go-vet-office/internal/domains/records/application"
	recordsports "github.com/Apurer/go-vet-office/internal/domains/records/ports"
	platformobservability "github.com/Apurer/go-vet-office/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-vet-office/internal/platform/postgres"
)

// Services are the decorated application services of every bounded context.
type Services struct {
	Owners  ownersports.Service
	Pets    petsports.Service
	Records recordsports.Service
	// Postgres reports whether the repositories are backed by a database.
	Postgres bool
}

type repositories struct {
	owners  ownersports.Repository
	pets    petsports.Repository
	records recordsports.Repository
}

// BuildServices connects the repositories (PostgreSQL when dsn is usable,
// memory otherwise) and wraps each service with its observability decorator.
func BuildServices(ctx context.Context, dsn string, instruments *platformobservability.Instruments) (Services, func()) {
	logger := effectiveLogger(instruments)
	db, cleanup := platformpostgres.ConnectOrFallback(ctx, dsn, logger)
	repos := buildRepositories(db)

	pets := petsobs.New(
		petsapp.NewService(repos.pets),
		petsobs.WithLogger(logger),
		petsobs.WithTracer(instruments.Tracer("internal.pets.application")),
		petsobs.WithMeter(instruments.Meter("internal.pets.application")),
	)
	owners := ownersobs.New(
		ownersapp.NewService(repos.owners, petdirectory.New(pets)),
		ownersobs.WithLogger(logger),
		ownersobs.WithTracer(instruments.Tracer("internal.owners.application")),
		ownersobs.WithMeter(instruments.Meter("internal.owners.application")),
	)
	records := recordsobs.New(
		recordsapp.NewService(repos.records),
		recordsobs.WithLogger(logger),
		recordsobs.WithTracer(instruments.Tracer("internal.records.application")),
		recordsobs.WithMeter(instruments.Meter("internal.records.application")),
	)
	logger.Info("services configured", slog.Bool("postgres", db != nil))
	return Services{Owners: owners, Pets: pets, Records: records, Postgres: db != nil}, cleanup
}

func buildRepositories(db *gorm.DB) repositories {
	if db == nil {
		return repositories{
			owners:  ownermemory.NewRepository(),
			pets:    petmemory.NewRepository(),
			records: recordmemory.NewRepository(),
		}
	}
	return repositories{
		owners:  ownerpostgres.NewRepository(db),
		pets:    petpostgres.NewRepository(db),
		records: recordpostgres.NewRepository(db),
	}
}
