package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"evaluation_orders/internal/adapter/http/handlers/mocks"
	"evaluation_orders/internal/domain/entities"
	"evaluation_orders/internal/usecase"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newOrderRouter(t *testing.T) (*gin.Engine, *mocks.MockIOrderUseCase, *mocks.MockINotificationUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIOrderUseCase(ctrl)
	notifications := mocks.NewMockINotificationUseCase(ctrl)
	h := NewOrderHandler(uc, notifications, nil)

	r := gin.New()
	r.POST("/v1/orders", h.CreateOrder)
	r.GET("/v1/orders/:id", h.GetOrder)
	r.PUT("/v1/orders/:id/services", h.UpdateServices)
	r.POST("/v1/orders/:id/documents", h.AddDocument)
	r.POST("/v1/orders/:id/receipt", h.SendReceipt)
	r.GET("/v1/orders/:id/summary", h.GetSummary)
	return r, uc, notifications
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		r, _, _ := newOrderRouter(t)
		if w := doJSON(r, http.MethodPost, "/v1/orders", "{"); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		r, _, _ := newOrderRouter(t)
		w := doJSON(r, http.MethodPost, "/v1/orders", `{"email":"nope","first_name":"Ana","last_name":"Silva"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc, _ := newOrderRouter(t)
		uc.EXPECT().CreateOrder(gomock.Any(), entities.CustomerInfo{Email: "ana@example.com", FirstName: "Ana", LastName: "Silva"}).
			Return(entities.OrderRecord{ID: "ord-1", Status: entities.OrderStatusPending}, nil)

		w := doJSON(r, http.MethodPost, "/v1/orders", `{"email":"ana@example.com","first_name":" Ana ","last_name":"Silva"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["order_id"] != "ord-1" || body["status"] != "pending" {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})

	t.Run("usecase error", func(t *testing.T) {
		r, uc, _ := newOrderRouter(t)
		uc.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(entities.OrderRecord{}, errors.New("ddb down"))

		w := doJSON(r, http.MethodPost, "/v1/orders", `{"email":"ana@example.com","first_name":"Ana","last_name":"Silva"}`)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestOrderHandler_GetOrder(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		r, uc, _ := newOrderRouter(t)
		uc.EXPECT().GetOrder(gomock.Any(), "missing").Return(entities.OrderRecord{}, usecase.ErrOrderNotFound)

		w := doJSON(r, http.MethodGet, "/v1/orders/missing", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["code"] != "ORDER_NOT_FOUND" {
			t.Fatalf("unexpected error body: %s", w.Body.String())
		}
	})

	t.Run("success parses services", func(t *testing.T) {
		r, uc, _ := newOrderRouter(t)
		uc.EXPECT().GetOrder(gomock.Any(), "ord-1").Return(entities.OrderRecord{
			ID:       "ord-1",
			Status:   entities.OrderStatusInProgress,
			Services: map[string]any{"type": "expert", "visa_type": "O-1"},
		}, nil)

		w := doJSON(r, http.MethodGet, "/v1/orders/ord-1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body struct {
			Services entities.ServiceInfo `json:"services"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body.Services.Type != entities.ServiceTypeExpert || body.Services.VisaType != "O-1" {
			t.Fatalf("unexpected services: %+v", body.Services)
		}
	})
}

func TestOrderHandler_UpdateServices(t *testing.T) {
	t.Run("invalid enum", func(t *testing.T) {
		r, _, _ := newOrderRouter(t)
		w := doJSON(r, http.MethodPut, "/v1/orders/ord-1/services", `{"type":"notary"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc, _ := newOrderRouter(t)
		uc.EXPECT().UpdateOrderServices(gomock.Any(), "ord-1", gomock.Any()).
			DoAndReturn(func(_ any, _ string, s entities.ServiceInfo) (entities.OrderRecord, error) {
				if s.Type != entities.ServiceTypeTranslation || s.PageCount != 3 || s.Urgency != entities.UrgencyStandard {
					t.Fatalf("unexpected services: %+v", s)
				}
				return entities.OrderRecord{ID: "ord-1", Status: entities.OrderStatusInProgress, Services: entities.ServiceInfoToRecord(s)}, nil
			})

		w := doJSON(r, http.MethodPut, "/v1/orders/ord-1/services", `{"type":"translation","language_from":"es","language_to":"en","page_count":3}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestOrderHandler_AddDocument(t *testing.T) {
	r, uc, _ := newOrderRouter(t)
	if w := doJSON(r, http.MethodPost, "/v1/orders/ord-1/documents", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	uc.EXPECT().UpdateOrderDocuments(gomock.Any(), "ord-1", "ord-1/1-abc-cv.pdf").
		Return(entities.OrderRecord{ID: "ord-1", DocumentPaths: []string{"ord-1/1-abc-cv.pdf"}}, nil)
	if w := doJSON(r, http.MethodPost, "/v1/orders/ord-1/documents", `{"path":"ord-1/1-abc-cv.pdf"}`); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestOrderHandler_ReceiptAndSummary(t *testing.T) {
	r, uc, notifications := newOrderRouter(t)

	notifications.EXPECT().SendReceiptEmail(gomock.Any(), "ord-1").Return(nil)
	if w := doJSON(r, http.MethodPost, "/v1/orders/ord-1/receipt", ""); w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", w.Code)
	}

	notifications.EXPECT().SendReceiptEmail(gomock.Any(), "ord-2").Return(usecase.ErrNotificationNotEligible)
	if w := doJSON(r, http.MethodPost, "/v1/orders/ord-2/receipt", ""); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}

	uc.EXPECT().GetPurchaseSummary(gomock.Any(), "ord-1").Return(usecase.PurchaseSummary{
		OrderID:  "ord-1",
		Items:    []entities.LineItem{{SKU: "evaluation-document", Quantity: 1, Price: 85}},
		Total:    85,
		Currency: "usd",
	}, nil)
	w := doJSON(r, http.MethodGet, "/v1/orders/ord-1/summary", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body usecase.PurchaseSummary
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Total != 85 || len(body.Items) != 1 {
		t.Fatalf("unexpected summary: %+v", body)
	}
}
