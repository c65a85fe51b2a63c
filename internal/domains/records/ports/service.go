package ports

import (
	"context"

	recordtypes "github.com/Apurer/go-vet-office/internal/domains/records/application/types"
)

// Service defines the records use cases exposed to adapters.
type Service interface {
	Submit(ctx context.Context, input recordtypes.SubmitRecordInput) (*recordtypes.RecordProjection, error)
	Get(ctx context.Context, input recordtypes.RecordIdentifier) (*recordtypes.RecordProjection, error)
	List(ctx context.Context, input recordtypes.ListRecordsInput) ([]*recordtypes.RecordProjection, error)
}
