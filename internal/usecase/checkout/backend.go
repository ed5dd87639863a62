package checkout

import (
	"context"
	"errors"
	"evaluation_orders/internal/domain/entities"
	"evaluation_orders/internal/usecase"
)

// OrderFetcher returns nil, nil when the order does not exist.
type OrderFetcher interface {
	GetOrder(ctx context.Context, orderID string) (*entities.OrderRecord, error)
}

// Backend is every order, payment and notification call a checkout makes.
type Backend interface {
	OrderFetcher
	CreateOrder(ctx context.Context, customer entities.CustomerInfo) (string, error)
	UpdateOrderServices(ctx context.Context, orderID string, services entities.ServiceInfo) error
	UpdateOrderDocuments(ctx context.Context, orderID string, path string) error
	CreatePaymentIntent(ctx context.Context, orderID string, amountCents int64, currency string, services entities.ServiceInfo) (usecase.PaymentIntent, error)
	ConfirmPayment(ctx context.Context, in usecase.ConfirmPaymentInput) (entities.BillingPayment, error)
	SendReceiptEmail(ctx context.Context, orderID string) error
	SendAbandonedCartNotification(ctx context.Context, data entities.OrderData, sessionID string) error
}

// ServiceBackend serves Backend from the in-process use cases.
type ServiceBackend struct {
	orders        usecase.IOrderUseCase
	payments      usecase.IBillingPaymentUseCase
	notifications usecase.INotificationUseCase
}

var _ Backend = (*ServiceBackend)(nil)

func NewServiceBackend(orders usecase.IOrderUseCase, payments usecase.IBillingPaymentUseCase, notifications usecase.INotificationUseCase) *ServiceBackend {
	return &ServiceBackend{orders: orders, payments: payments, notifications: notifications}
}

func (b *ServiceBackend) CreateOrder(ctx context.Context, customer entities.CustomerInfo) (string, error) {
	o, err := b.orders.CreateOrder(ctx, customer)
	if err != nil {
		return "", err
	}
	return o.ID, nil
}

func (b *ServiceBackend) GetOrder(ctx context.Context, orderID string) (*entities.OrderRecord, error) {
	o, err := b.orders.GetOrder(ctx, orderID)
	if errors.Is(err, usecase.ErrOrderNotFound) || errors.Is(err, usecase.ErrInvalidOrderID) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (b *ServiceBackend) UpdateOrderServices(ctx context.Context, orderID string, services entities.ServiceInfo) error {
	_, err := b.orders.UpdateOrderServices(ctx, orderID, services)
	return err
}

func (b *ServiceBackend) UpdateOrderDocuments(ctx context.Context, orderID string, path string) error {
	_, err := b.orders.UpdateOrderDocuments(ctx, orderID, path)
	return err
}

func (b *ServiceBackend) CreatePaymentIntent(ctx context.Context, orderID string, amountCents int64, currency string, services entities.ServiceInfo) (usecase.PaymentIntent, error) {
	return b.payments.CreatePaymentIntent(ctx, usecase.PaymentIntentInput{
		OrderID:     orderID,
		AmountCents: amountCents,
		Currency:    currency,
		Services:    services,
	})
}

func (b *ServiceBackend) ConfirmPayment(ctx context.Context, in usecase.ConfirmPaymentInput) (entities.BillingPayment, error) {
	return b.payments.ConfirmPayment(ctx, in)
}

func (b *ServiceBackend) SendReceiptEmail(ctx context.Context, orderID string) error {
	return b.notifications.SendReceiptEmail(ctx, orderID)
}

func (b *ServiceBackend) SendAbandonedCartNotification(ctx context.Context, data entities.OrderData, sessionID string) error {
	return b.notifications.SendAbandonedCartNotification(ctx, data, sessionID)
}
