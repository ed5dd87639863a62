package usecase

import (
	"context"
	"errors"
	"evaluation_orders/internal/domain/entities"
	"evaluation_orders/internal/domain/pricing"
	"evaluation_orders/internal/infrastructure/logger"
	"evaluation_orders/internal/infrastructure/metrics"
	"evaluation_orders/internal/usecase/interfaces"
	"time"

	"go.uber.org/zap"
)

var ErrNotificationNotEligible = errors.New("not enough customer data to notify")

// INotificationUseCase sends the transactional emails of the checkout.
// Callers treat every error as non-critical.

type INotificationUseCase interface {
	SendReceiptEmail(ctx context.Context, orderID string) error
	SendAbandonedCartNotification(ctx context.Context, data entities.OrderData, sessionID string) error
}

type NotificationUseCase struct {
	orders    IOrderUseCase
	publisher interfaces.INotificationPublisher
	metrics   *metrics.Registry
	log       *zap.Logger
}

var _ INotificationUseCase = (*NotificationUseCase)(nil)

func NewNotificationUseCase(orders IOrderUseCase, publisher interfaces.INotificationPublisher, m *metrics.Registry, log *zap.Logger) *NotificationUseCase {
	return &NotificationUseCase{orders: orders, publisher: publisher, metrics: m, log: logger.OrNop(log)}
}

func (u *NotificationUseCase) SendReceiptEmail(ctx context.Context, orderID string) error {
	o, err := u.orders.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	services := entities.ServiceInfoFromRecord(o.Services)
	n := entities.EmailNotification{
		Kind:    entities.EmailKindReceipt,
		To:      o.Customer.Email,
		OrderID: o.ID,
		Data: map[string]any{
			"first_name": o.Customer.FirstName,
			"items":      pricing.LineItems(services),
			"total":      pricing.CalculatePrice(services),
			"currency":   pricing.Currency,
		},
		OccurredAt: time.Now().UTC(),
	}
	if err := u.publisher.PublishEmail(ctx, n); err != nil {
		return err
	}
	u.log.Info("[notification][usecase] receipt queued", zap.String("order_id", o.ID))
	return nil
}

// SendAbandonedCartNotification requires a valid email plus one more
// identifying or service field.
func (u *NotificationUseCase) SendAbandonedCartNotification(ctx context.Context, data entities.OrderData, sessionID string) error {
	if !AbandonedCartEligible(data) {
		return ErrNotificationNotEligible
	}

	n := entities.EmailNotification{
		Kind:      entities.EmailKindAbandonedCart,
		To:        data.CustomerInfo.Email,
		SessionID: sessionID,
		Data: map[string]any{
			"first_name":   data.CustomerInfo.FirstName,
			"last_name":    data.CustomerInfo.LastName,
			"service_type": string(data.Services.Type),
			"price":        pricing.CalculatePrice(data.Services),
			"documents":    len(data.Documents),
		},
		OccurredAt: time.Now().UTC(),
	}
	if err := u.publisher.PublishEmail(ctx, n); err != nil {
		return err
	}
	u.metrics.AbandonedCart()
	u.log.Info("[notification][usecase] abandoned cart queued", zap.String("session_id", sessionID))
	return nil
}

// AbandonedCartEligible reports whether data identifies someone worth
// reminding.
func AbandonedCartEligible(data entities.OrderData) bool {
	if !entities.IsValidEmail(data.CustomerInfo.Email) {
		return false
	}
	c := data.CustomerInfo
	return c.FirstName != "" || c.LastName != "" || c.Phone != "" || data.Services.Type != ""
}
