package routes

import (
	"evaluation_orders/internal/adapter/http/handlers"
	"evaluation_orders/internal/adapter/http/handlers/mocks"
	"evaluation_orders/internal/domain/entities"
	"evaluation_orders/internal/infrastructure/config"
	"evaluation_orders/internal/infrastructure/metrics"
	"evaluation_orders/internal/infrastructure/storage"
	"evaluation_orders/internal/usecase/checkout"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

type fakeBlobs map[string]string

func (f fakeBlobs) Get(path string) ([]byte, string, error) {
	body, ok := f[path]
	if !ok {
		return nil, "", storage.ErrObjectNotFound
	}
	return []byte(body), "application/pdf", nil
}

func newTestRouter(t *testing.T, files *handlers.FileHandler) (*gin.Engine, *mocks.MockIQuoteUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	quotes := mocks.NewMockIQuoteUseCase(ctrl)
	h := Handlers{
		Checkout: handlers.NewCheckoutHandler(nil, 0, nil),
		Orders:   handlers.NewOrderHandler(mocks.NewMockIOrderUseCase(ctrl), mocks.NewMockINotificationUseCase(ctrl), nil),
		Quotes:   handlers.NewQuoteHandler(quotes, nil),
		Payments: handlers.NewBillingPaymentHandler(mocks.NewMockIBillingPaymentUseCase(ctrl), nil),
		Files:    files,
	}
	return NewRouter(h, metrics.NewRegistry(), nil), quotes
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestNewRouter_Ping(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	w := get(r, "/v1/ping")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "pong") {
		t.Fatalf("unexpected ping response: %d %s", w.Code, w.Body.String())
	}
}

func TestNewRouter_Metrics(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	w := get(r, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "checkout_started_total") {
		t.Fatalf("expected checkout counters in scrape, got %s", w.Body.String())
	}
}

func TestNewRouter_QuoteRouteIsMounted(t *testing.T) {
	r, quotes := newTestRouter(t, nil)
	quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusPending}, nil)

	w := get(r, "/v1/quotes/q-1")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"q-1"`) {
		t.Fatalf("unexpected quote response: %d %s", w.Code, w.Body.String())
	}
}

func TestNewRouter_Files(t *testing.T) {
	t.Run("not mounted without a local store", func(t *testing.T) {
		r, _ := newTestRouter(t, nil)
		if w := get(r, "/v1/files/orders/ord-1/a.pdf"); w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("served from the local store", func(t *testing.T) {
		files := handlers.NewFileHandler(fakeBlobs{"orders/ord-1/a.pdf": "%PDF"})
		r, _ := newTestRouter(t, files)

		w := get(r, "/v1/files/orders/ord-1/a.pdf")
		if w.Code != http.StatusOK || w.Body.String() != "%PDF" {
			t.Fatalf("unexpected file response: %d %s", w.Code, w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
			t.Fatalf("unexpected content type %q", ct)
		}
		if w := get(r, "/v1/files/orders/ord-1/missing.pdf"); w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestNewRouter_RecoversFromPanics(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	if w := get(r, "/boom"); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestCheckoutConfig(t *testing.T) {
	t.Run("keeps defaults for unset values", func(t *testing.T) {
		got := checkoutConfig(config.Config{})
		if got != checkout.DefaultConfig() {
			t.Fatalf("expected defaults, got %+v", got)
		}
	})

	t.Run("applies overrides", func(t *testing.T) {
		got := checkoutConfig(config.Config{
			AbandonedCartDelay:   time.Minute,
			ServicesSyncInterval: time.Second,
			UploadConcurrency:    5,
			MaxUploadBytes:       1024,
		})
		want := checkout.DefaultConfig()
		want.AbandonedCartDelay = time.Minute
		want.SessionIdleTTL = 2 * time.Minute
		want.ServicesSyncInterval = time.Second
		want.UploadConcurrency = 5
		want.MaxUploadBytes = 1024
		if got != want {
			t.Fatalf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("explicit idle ttl wins", func(t *testing.T) {
		got := checkoutConfig(config.Config{AbandonedCartDelay: time.Minute, SessionIdleTTL: time.Hour})
		if got.SessionIdleTTL != time.Hour {
			t.Fatalf("expected 1h idle ttl, got %s", got.SessionIdleTTL)
		}
	})
}
