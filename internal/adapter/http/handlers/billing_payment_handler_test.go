package handlers

import (
	"encoding/json"
	"evaluation_orders/internal/adapter/http/handlers/mocks"
	"evaluation_orders/internal/domain/entities"
	"evaluation_orders/internal/usecase"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newPaymentRouter(t *testing.T) (*gin.Engine, *mocks.MockIBillingPaymentUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIBillingPaymentUseCase(ctrl)
	h := NewBillingPaymentHandler(uc, nil)

	r := gin.New()
	r.POST("/v1/payments/intents", h.CreatePaymentIntent)
	r.POST("/v1/payments/confirm", h.ConfirmPayment)
	r.GET("/v1/payments/:order_id", h.GetPaymentByOrderID)
	return r, uc
}

func TestBillingPaymentHandler_CreatePaymentIntent(t *testing.T) {
	t.Run("zero amount", func(t *testing.T) {
		r, _ := newPaymentRouter(t)
		w := doJSON(r, http.MethodPost, "/v1/payments/intents", `{"order_id":"ord-1","amount_cents":0}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("amount mismatch", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).Return(usecase.PaymentIntent{}, usecase.ErrPaymentAmountMismatch)

		w := doJSON(r, http.MethodPost, "/v1/payments/intents", `{"order_id":"ord-1","amount_cents":100}`)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().CreatePaymentIntent(gomock.Any(), usecase.PaymentIntentInput{OrderID: "ord-1", AmountCents: 8500, Currency: "usd"}).
			Return(usecase.PaymentIntent{ID: "pay-1", ClientSecret: "pay-1_secret", AmountCents: 8500, Currency: "usd"}, nil)

		w := doJSON(r, http.MethodPost, "/v1/payments/intents", `{"order_id":"ord-1","amount_cents":8500,"currency":"usd"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["client_secret"] != "pay-1_secret" || body["intent_id"] != "pay-1" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestBillingPaymentHandler_ConfirmPayment(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		r, _ := newPaymentRouter(t)
		if w := doJSON(r, http.MethodPost, "/v1/payments/confirm", `{"client_secret":"s"}`); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("declined surfaces provider detail", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any()).
			Return(entities.BillingPayment{ID: "pay-1", Status: entities.PaymentStatusDenied}, &usecase.PaymentDeclinedError{Status: "rejected", Detail: "cc_rejected_insufficient_amount"})

		w := doJSON(r, http.MethodPost, "/v1/payments/confirm", `{"client_secret":"s","card_token":"tok"}`)
		if w.Code != http.StatusPaymentRequired {
			t.Fatalf("expected 402, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "cc_rejected_insufficient_amount") {
			t.Fatalf("expected decline detail in body: %s", w.Body.String())
		}
	})

	t.Run("unknown intent", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any()).Return(entities.BillingPayment{}, usecase.ErrPaymentIntentNotFound)

		if w := doJSON(r, http.MethodPost, "/v1/payments/confirm", `{"client_secret":"s","card_token":"tok"}`); w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("approved", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().ConfirmPayment(gomock.Any(), usecase.ConfirmPaymentInput{ClientSecret: "s", CardToken: "tok", Installments: 1, BillingEmail: "ana@example.com"}).
			Return(entities.BillingPayment{ID: "pay-1", OrderID: "ord-1", Status: entities.PaymentStatusApproved}, nil)

		w := doJSON(r, http.MethodPost, "/v1/payments/confirm", `{"client_secret":"s","card_token":"tok","installments":1,"billing_email":"ana@example.com"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestBillingPaymentHandler_GetPaymentByOrderID(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().ListByOrderID(gomock.Any(), "ord-1").Return(nil, nil)

		if w := doJSON(r, http.MethodGet, "/v1/payments/ord-1", ""); w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("latest wins", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		now := time.Now().UTC()
		uc.EXPECT().ListByOrderID(gomock.Any(), "ord-1").Return([]entities.BillingPayment{
			{ID: "old", Date: now.Add(-time.Hour), Status: entities.PaymentStatusDenied},
			{ID: "new", Date: now, Status: entities.PaymentStatusApproved},
		}, nil)

		w := doJSON(r, http.MethodGet, "/v1/payments/ord-1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["id"] != "new" {
			t.Fatalf("unexpected payment: %s", w.Body.String())
		}
	})
}
