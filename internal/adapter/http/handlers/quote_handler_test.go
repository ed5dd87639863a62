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

func newQuoteRouter(t *testing.T) (*gin.Engine, *mocks.MockIQuoteUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIQuoteUseCase(ctrl)
	h := NewQuoteHandler(uc, nil)

	r := gin.New()
	r.POST("/v1/quotes", h.CreateQuote)
	r.GET("/v1/quotes/:id", h.GetQuote)
	r.POST("/v1/quotes/:id/documents", h.AttachDocument)
	r.PATCH("/v1/quotes/:id/approve", h.ApproveQuote)
	r.PATCH("/v1/quotes/:id/reject", h.RejectQuote)
	r.PATCH("/v1/quotes/:id/cancel", h.CancelQuote)
	return r, uc
}

func TestQuoteHandler_CreateQuote(t *testing.T) {
	t.Run("missing customer", func(t *testing.T) {
		r, _ := newQuoteRouter(t)
		w := doJSON(r, http.MethodPost, "/v1/quotes", `{"services":{"type":"evaluation"}}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		now := time.Now().UTC()
		uc.EXPECT().CreateQuote(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, c entities.CustomerInfo, s entities.ServiceInfo) (entities.Quote, error) {
				if c.Email != "ana@example.com" || s.EvaluationType != entities.EvaluationTypeCourse {
					t.Fatalf("unexpected input: %+v %+v", c, s)
				}
				return entities.Quote{ID: "q-1", Customer: c, Services: s, Price: 150, Status: entities.QuoteStatusPending, CreatedAt: now, UpdatedAt: now}, nil
			})

		w := doJSON(r, http.MethodPost, "/v1/quotes", `{"customer":{"email":"ana@example.com","first_name":"Ana","last_name":"Silva"},"services":{"type":"evaluation","evaluation_type":"course"}}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["quote_id"] != "q-1" || body["price"] != float64(150) {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().CreateQuote(gomock.Any(), gomock.Any(), gomock.Any()).Return(entities.Quote{}, usecase.ErrInvalidQuoteValue)

		w := doJSON(r, http.MethodPost, "/v1/quotes", `{"customer":{"email":"ana@example.com","first_name":"Ana","last_name":"Silva"},"services":{}}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_AttachDocument(t *testing.T) {
	t.Run("missing path", func(t *testing.T) {
		r, _ := newQuoteRouter(t)
		if w := doJSON(r, http.MethodPost, "/v1/quotes/q-1/documents", `{}`); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().AttachDocument(gomock.Any(), "q-1", "temp-1/1-abc-cv.pdf").
			Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusPending, DocumentPaths: []string{"temp-1/1-abc-cv.pdf"}}, nil)

		w := doJSON(r, http.MethodPost, "/v1/quotes/q-1/documents", `{"path":"temp-1/1-abc-cv.pdf"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "temp-1/1-abc-cv.pdf") {
			t.Fatalf("expected the attached path in the response, got %s", w.Body.String())
		}
	})

	t.Run("invalid path", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().AttachDocument(gomock.Any(), "q-1", " ").Return(entities.Quote{}, usecase.ErrInvalidDocumentPath)

		if w := doJSON(r, http.MethodPost, "/v1/quotes/q-1/documents", `{"path":" "}`); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown quote", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().AttachDocument(gomock.Any(), "q-9", "temp-1/a.pdf").Return(entities.Quote{}, usecase.ErrQuoteNotFound)

		if w := doJSON(r, http.MethodPost, "/v1/quotes/q-9/documents", `{"path":"temp-1/a.pdf"}`); w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_PatchStatus(t *testing.T) {
	t.Run("approve success", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().ApproveByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusApproved}, nil)

		w := doJSON(r, http.MethodPatch, "/v1/quotes/q-1/approve", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("reject not pending", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().RejectByID(gomock.Any(), "q-1").Return(entities.Quote{}, usecase.ErrQuoteNotPending)

		if w := doJSON(r, http.MethodPatch, "/v1/quotes/q-1/reject", ""); w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("cancel not found", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().CancelByID(gomock.Any(), "q-9").Return(entities.Quote{}, usecase.ErrQuoteNotFound)

		if w := doJSON(r, http.MethodPatch, "/v1/quotes/q-9/cancel", ""); w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("get", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1"}, nil)

		if w := doJSON(r, http.MethodGet, "/v1/quotes/q-1", ""); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
