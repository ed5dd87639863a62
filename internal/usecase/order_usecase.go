package usecase

import (
	"context"
	"errors"
	"evaluation_orders/internal/domain/entities"
	"evaluation_orders/internal/domain/pricing"
	"evaluation_orders/internal/infrastructure/logger"
	"evaluation_orders/internal/infrastructure/metrics"
	"evaluation_orders/internal/usecase/interfaces"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidOrderID      = errors.New("invalid order id")
	ErrInvalidDocumentPath = errors.New("invalid document path")
	ErrInvalidOrderStatus  = errors.New("invalid order status")
)

// IOrderUseCase exposes the order record operations the checkout relies on.
//
//   - createOrder(customerInfo) => CreateOrder()
//   - getOrder(orderId) => GetOrder()
//   - updateOrderServices(orderId, services) => UpdateOrderServices()
//   - updateOrderDocuments(orderId, path) => UpdateOrderDocuments()

type IOrderUseCase interface {
	CreateOrder(ctx context.Context, customer entities.CustomerInfo) (entities.OrderRecord, error)
	GetOrder(ctx context.Context, id string) (entities.OrderRecord, error)
	UpdateOrderServices(ctx context.Context, id string, services entities.ServiceInfo) (entities.OrderRecord, error)
	UpdateOrderDocuments(ctx context.Context, id string, path string) (entities.OrderRecord, error)
	UpdateOrderStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.OrderRecord, error)
	GetPurchaseSummary(ctx context.Context, id string) (PurchaseSummary, error)
}

// PurchaseSummary is the canonical view of a paid order shown on the
// success page.
type PurchaseSummary struct {
	OrderID  string               `json:"order_id"`
	Status   entities.OrderStatus `json:"status"`
	Items    []entities.LineItem  `json:"items"`
	Total    float64              `json:"total"`
	Currency string               `json:"currency"`
}

type OrderUseCase struct {
	repo      interfaces.IOrderRepository
	analytics interfaces.IAnalyticsTracker
	metrics   *metrics.Registry
	log       *zap.Logger
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(repo interfaces.IOrderRepository, analytics interfaces.IAnalyticsTracker, m *metrics.Registry, log *zap.Logger) *OrderUseCase {
	return &OrderUseCase{repo: repo, analytics: analytics, metrics: m, log: logger.OrNop(log)}
}

func (u *OrderUseCase) CreateOrder(ctx context.Context, customer entities.CustomerInfo) (entities.OrderRecord, error) {
	customer = trimCustomer(customer)
	if err := customer.Validate(); err != nil {
		return entities.OrderRecord{}, err
	}

	now := time.Now().UTC()
	o := entities.OrderRecord{
		ID:        uuid.NewString(),
		Status:    entities.OrderStatusPending,
		Customer:  customer,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := u.repo.Create(ctx, o)
	if err != nil {
		u.log.Error("[order][usecase] create failed", zap.Error(err))
		return entities.OrderRecord{}, err
	}
	u.metrics.OrderCreated()
	u.log.Info("[order][usecase] order created", zap.String("order_id", created.ID))
	return created, nil
}

func (u *OrderUseCase) GetOrder(ctx context.Context, id string) (entities.OrderRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.OrderRecord{}, ErrInvalidOrderID
	}

	o, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.OrderRecord{}, err
	}
	if o.ID == "" {
		return entities.OrderRecord{}, ErrOrderNotFound
	}
	return o, nil
}

// UpdateOrderServices upserts the service selection. An order still in
// pending moves to in_progress once it carries a selection.
func (u *OrderUseCase) UpdateOrderServices(ctx context.Context, id string, services entities.ServiceInfo) (entities.OrderRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.OrderRecord{}, ErrInvalidOrderID
	}

	updated, err := u.repo.UpdateServices(ctx, id, entities.ServiceInfoToRecord(services))
	if err != nil {
		return entities.OrderRecord{}, err
	}
	if updated.ID == "" {
		return entities.OrderRecord{}, ErrOrderNotFound
	}
	if updated.Status == entities.OrderStatusPending && services.Type.Valid() {
		return u.UpdateOrderStatus(ctx, id, entities.OrderStatusInProgress)
	}
	return updated, nil
}

func (u *OrderUseCase) UpdateOrderDocuments(ctx context.Context, id string, path string) (entities.OrderRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.OrderRecord{}, ErrInvalidOrderID
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return entities.OrderRecord{}, ErrInvalidDocumentPath
	}

	updated, err := u.repo.AppendDocumentPath(ctx, id, path)
	if err != nil {
		return entities.OrderRecord{}, err
	}
	if updated.ID == "" {
		return entities.OrderRecord{}, ErrOrderNotFound
	}
	return updated, nil
}

func (u *OrderUseCase) UpdateOrderStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.OrderRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.OrderRecord{}, ErrInvalidOrderID
	}
	switch status {
	case entities.OrderStatusPending, entities.OrderStatusPendingPayment, entities.OrderStatusInProgress,
		entities.OrderStatusProcessing, entities.OrderStatusCompleted, entities.OrderStatusCancelled:
	default:
		return entities.OrderRecord{}, ErrInvalidOrderStatus
	}

	updated, err := u.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return entities.OrderRecord{}, err
	}
	if updated.ID == "" {
		return entities.OrderRecord{}, ErrOrderNotFound
	}
	u.log.Info("[order][usecase] status updated", zap.String("order_id", id), zap.String("status", string(status)))
	return updated, nil
}

// GetPurchaseSummary returns the canonical line items of an order and
// records the purchase analytics event. Tracking failures are logged only.
func (u *OrderUseCase) GetPurchaseSummary(ctx context.Context, id string) (PurchaseSummary, error) {
	o, err := u.GetOrder(ctx, id)
	if err != nil {
		return PurchaseSummary{}, err
	}

	services := entities.ServiceInfoFromRecord(o.Services)
	summary := PurchaseSummary{
		OrderID:  o.ID,
		Status:   o.Status,
		Items:    pricing.LineItems(services),
		Total:    pricing.CalculatePrice(services),
		Currency: pricing.Currency,
	}

	if u.analytics != nil {
		ev := entities.AnalyticsEvent{
			Name:       entities.AnalyticsPurchase,
			OrderID:    o.ID,
			Value:      summary.Total,
			Currency:   summary.Currency,
			Items:      summary.Items,
			OccurredAt: time.Now().UTC(),
		}
		if err := u.analytics.Track(ctx, ev); err != nil {
			u.log.Warn("[order][usecase] purchase tracking failed", zap.String("order_id", o.ID), zap.Error(err))
		}
	}
	return summary, nil
}

func trimCustomer(c entities.CustomerInfo) entities.CustomerInfo {
	return entities.CustomerInfo{
		Email:     strings.TrimSpace(c.Email),
		FirstName: strings.TrimSpace(c.FirstName),
		LastName:  strings.TrimSpace(c.LastName),
		Phone:     strings.TrimSpace(c.Phone),
		Company:   strings.TrimSpace(c.Company),
	}
}
