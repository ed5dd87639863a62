package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegistry_Counters(t *testing.T) {
	r := NewRegistry()
	r.OrderCreated()
	r.Upload("success")
	r.Upload("success")
	r.Upload("error")
	r.Payment("approved", 0.2)

	if got := testutil.ToFloat64(r.OrdersCreated); got != 1 {
		t.Fatalf("expected 1 order, got %v", got)
	}
	if got := testutil.ToFloat64(r.Uploads.WithLabelValues("success")); got != 2 {
		t.Fatalf("expected 2 successful uploads, got %v", got)
	}

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(w.Body.String(), "payments_total") {
		t.Fatalf("expected payments_total in exposition")
	}
}

func TestRegistry_NilSafe(t *testing.T) {
	var r *Registry
	r.OrderCreated()
	r.CheckoutStartedInc()
	r.Upload("error")
	r.AbandonedCart()
	r.Payment("denied", 1)
	r.SessionOpened()
	r.SessionClosed()
}
