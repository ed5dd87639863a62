package usecase

import (
	"context"
	"errors"
	"evaluation_orders/internal/domain/entities"
	"evaluation_orders/internal/domain/pricing"
	"evaluation_orders/internal/usecase/interfaces"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrQuoteNotFound     = errors.New("quote not found")
	ErrInvalidQuoteID    = errors.New("invalid quote id")
	ErrInvalidQuoteValue = errors.New("invalid quote value")
	ErrQuoteNotPending   = errors.New("quote is not pending")
)

// IQuoteUseCase exposes pre-order price estimates.
//
//   - CreateQuote prices a selection with the same calculator as checkout.
//   - Approve/Reject/Cancel move a pending quote to a final status.
//   - AttachDocument links a file uploaded under the quote's temporary namespace.

type IQuoteUseCase interface {
	CreateQuote(ctx context.Context, customer entities.CustomerInfo, services entities.ServiceInfo) (entities.Quote, error)
	ApproveByID(ctx context.Context, id string) (entities.Quote, error)
	RejectByID(ctx context.Context, id string) (entities.Quote, error)
	CancelByID(ctx context.Context, id string) (entities.Quote, error)
	AttachDocument(ctx context.Context, id string, path string) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
}

type QuoteUseCase struct {
	repo interfaces.IQuoteRepository
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(repo interfaces.IQuoteRepository) *QuoteUseCase {
	return &QuoteUseCase{repo: repo}
}

func (u *QuoteUseCase) CreateQuote(ctx context.Context, customer entities.CustomerInfo, services entities.ServiceInfo) (entities.Quote, error) {
	customer = trimCustomer(customer)
	if !entities.IsValidEmail(customer.Email) {
		return entities.Quote{}, &entities.ValidationError{Fields: []string{"email"}}
	}
	price := pricing.CalculatePrice(services)
	if price <= 0 || !services.Type.Valid() {
		return entities.Quote{}, ErrInvalidQuoteValue
	}

	now := time.Now().UTC()
	q := entities.Quote{
		ID:        uuid.NewString(),
		Customer:  customer,
		Services:  services,
		Price:     price,
		Status:    entities.QuoteStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return u.repo.Create(ctx, q)
}

func (u *QuoteUseCase) ApproveByID(ctx context.Context, id string) (entities.Quote, error) {
	return u.updateStatus(ctx, id, entities.QuoteStatusApproved)
}

func (u *QuoteUseCase) RejectByID(ctx context.Context, id string) (entities.Quote, error) {
	return u.updateStatus(ctx, id, entities.QuoteStatusRejected)
}

func (u *QuoteUseCase) CancelByID(ctx context.Context, id string) (entities.Quote, error) {
	return u.updateStatus(ctx, id, entities.QuoteStatusCancelled)
}

func (u *QuoteUseCase) updateStatus(ctx context.Context, id string, status entities.QuoteStatus) (entities.Quote, error) {
	current, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if current.Status != entities.QuoteStatusPending {
		return entities.Quote{}, ErrQuoteNotPending
	}

	updated, err := u.repo.UpdateStatusByID(ctx, current.ID, status)
	if err != nil {
		return entities.Quote{}, err
	}
	if updated.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return updated, nil
}

func (u *QuoteUseCase) AttachDocument(ctx context.Context, id string, path string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return entities.Quote{}, ErrInvalidDocumentPath
	}

	updated, err := u.repo.AppendDocumentPath(ctx, id, path)
	if err != nil {
		return entities.Quote{}, err
	}
	if updated.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return updated, nil
}

func (u *QuoteUseCase) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}
