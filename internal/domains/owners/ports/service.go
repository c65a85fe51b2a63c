package ports

import (
	"context"

	ownertypes "github.com/Apurer/go-vet-office/internal/domains/owners/application/types"
)

// Service defines the owners use cases exposed to adapters.
type Service interface {
	CreateOwner(ctx context.Context, input ownertypes.CreateOwnerInput) (*ownertypes.OwnerProjection, error)
	GetOwner(ctx context.Context, input ownertypes.OwnerIdentifier) (*ownertypes.OwnerProjection, error)
	SearchOwners(ctx context.Context, input ownertypes.SearchOwnersInput) ([]ownertypes.OwnerMatch, error)
}
