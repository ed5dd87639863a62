package usecase

import (
	"context"
	"errors"
	"testing"

	"evaluation_orders/internal/domain/entities"
	mock_interfaces "evaluation_orders/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestQuoteUseCase_CreateQuote(t *testing.T) {
	customer := entities.CustomerInfo{Email: "jane@example.com", FirstName: "Jane"}

	t.Run("invalid email", func(t *testing.T) {
		uc := NewQuoteUseCase(nil)
		_, err := uc.CreateQuote(context.Background(), entities.CustomerInfo{Email: "nope"}, entities.ServiceInfo{Type: entities.ServiceTypeExpert})
		var verr *entities.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("no service type", func(t *testing.T) {
		uc := NewQuoteUseCase(nil)
		_, err := uc.CreateQuote(context.Background(), customer, entities.ServiceInfo{DeliveryType: entities.DeliveryTypeExpress})
		if !errors.Is(err, ErrInvalidQuoteValue) {
			t.Fatalf("expected ErrInvalidQuoteValue, got %v", err)
		}
	})

	t.Run("create success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo)

		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Quote{})).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				if q.ID == "" || q.Price != 75 || q.Status != entities.QuoteStatusPending {
					t.Fatalf("unexpected quote: %+v", q)
				}
				if q.CreatedAt.IsZero() || !q.CreatedAt.Equal(q.UpdatedAt) {
					t.Fatalf("timestamps must be set")
				}
				return q, nil
			},
		)

		_, err := uc.CreateQuote(context.Background(), customer, entities.ServiceInfo{Type: entities.ServiceTypeTranslation, PageCount: 3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestQuoteUseCase_UpdateStatus(t *testing.T) {
	t.Run("approve pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusPending}, nil)
		repo.EXPECT().UpdateStatusByID(gomock.Any(), "q-1", entities.QuoteStatusApproved).Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusApproved}, nil)

		res, err := uc.ApproveByID(context.Background(), " q-1 ")
		if err != nil || res.Status != entities.QuoteStatusApproved {
			t.Fatalf("unexpected result err=%v res=%+v", err, res)
		}
	})

	t.Run("cannot reject a cancelled quote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusCancelled}, nil)

		if _, err := uc.RejectByID(context.Background(), "q-1"); !errors.Is(err, ErrQuoteNotPending) {
			t.Fatalf("expected ErrQuoteNotPending, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{}, nil)

		if _, err := uc.CancelByID(context.Background(), "q-1"); !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})
}

func TestQuoteUseCase_AttachDocument(t *testing.T) {
	uc := NewQuoteUseCase(nil)
	if _, err := uc.AttachDocument(context.Background(), "", "p"); !errors.Is(err, ErrInvalidQuoteID) {
		t.Fatalf("expected ErrInvalidQuoteID, got %v", err)
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
	uc = NewQuoteUseCase(repo)
	repo.EXPECT().AppendDocumentPath(gomock.Any(), "q-1", "temp-1/a.pdf").Return(entities.Quote{ID: "q-1", DocumentPaths: []string{"temp-1/a.pdf"}}, nil)

	res, err := uc.AttachDocument(context.Background(), "q-1", "temp-1/a.pdf")
	if err != nil || len(res.DocumentPaths) != 1 {
		t.Fatalf("unexpected result err=%v res=%+v", err, res)
	}
}
