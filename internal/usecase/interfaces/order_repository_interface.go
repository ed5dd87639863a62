package interfaces

import (
	"context"
	"evaluation_orders/internal/domain/entities"
)

// IOrderRepository abstracts DynamoDB persistence for OrderRecord.
//
// Lookups and updates return a zero OrderRecord (empty ID) when the order
// does not exist.

type IOrderRepository interface {
	Create(ctx context.Context, o entities.OrderRecord) (entities.OrderRecord, error)
	GetByID(ctx context.Context, id string) (entities.OrderRecord, error)
	UpdateServices(ctx context.Context, id string, services map[string]any) (entities.OrderRecord, error)
	AppendDocumentPath(ctx context.Context, id string, path string) (entities.OrderRecord, error)
	UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.OrderRecord, error)
}
