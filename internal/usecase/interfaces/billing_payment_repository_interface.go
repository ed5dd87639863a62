package interfaces

import (
	"context"
	"evaluation_orders/internal/domain/entities"
)

// IBillingPaymentRepository abstracts DynamoDB persistence for BillingPayment.

type IBillingPaymentRepository interface {
	Create(ctx context.Context, p entities.BillingPayment) (entities.BillingPayment, error)
	GetByID(ctx context.Context, id string) (entities.BillingPayment, error)
	GetByClientSecret(ctx context.Context, secret string) (entities.BillingPayment, error)
	ListByOrderID(ctx context.Context, orderID string) ([]entities.BillingPayment, error)
	UpdateOutcome(ctx context.Context, p entities.BillingPayment) (entities.BillingPayment, error)
}
