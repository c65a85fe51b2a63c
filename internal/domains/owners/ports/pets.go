package ports

import (
	"context"

	ownertypes "github.com/Apurer/go-vet-office/internal/domains/owners/application/types"
)

// PetDirectory lists the pets registered under an owner display name
// (outbound port, implemented on top of the pets context).
type PetDirectory interface {
	PetsOf(ctx context.Context, ownerName string) ([]ownertypes.PetSummary, error)
}
