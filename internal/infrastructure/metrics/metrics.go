// Package metrics exposes the checkout counters scraped by Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry methods are safe to call on a nil *Registry, which records nothing.
type Registry struct {
	reg                   *prometheus.Registry
	OrdersCreated         prometheus.Counter
	CheckoutStarted       prometheus.Counter
	Uploads               *prometheus.CounterVec
	AbandonedCartNotified prometheus.Counter
	Payments              *prometheus.CounterVec
	PaymentLatencySec     prometheus.Histogram
	ActiveSessions        prometheus.Gauge
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{Name: "orders_created_total"})
	checkoutStarted := prometheus.NewCounter(prometheus.CounterOpts{Name: "checkout_started_total"})
	uploads := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "document_uploads_total"}, []string{"outcome"})
	abandoned := prometheus.NewCounter(prometheus.CounterOpts{Name: "abandoned_cart_notifications_total"})
	payments := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "payments_total"}, []string{"status"})
	paymentLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "payment_confirm_latency_seconds",
		Buckets: prometheus.DefBuckets,
	})
	active := prometheus.NewGauge(prometheus.GaugeOpts{Name: "checkout_active_sessions"})

	r.MustRegister(ordersCreated, checkoutStarted, uploads, abandoned, payments, paymentLatency, active)
	return &Registry{
		reg:                   r,
		OrdersCreated:         ordersCreated,
		CheckoutStarted:       checkoutStarted,
		Uploads:               uploads,
		AbandonedCartNotified: abandoned,
		Payments:              payments,
		PaymentLatencySec:     paymentLatency,
		ActiveSessions:        active,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

func (r *Registry) OrderCreated() {
	if r != nil {
		r.OrdersCreated.Inc()
	}
}

func (r *Registry) CheckoutStartedInc() {
	if r != nil {
		r.CheckoutStarted.Inc()
	}
}

func (r *Registry) Upload(outcome string) {
	if r != nil {
		r.Uploads.WithLabelValues(outcome).Inc()
	}
}

func (r *Registry) AbandonedCart() {
	if r != nil {
		r.AbandonedCartNotified.Inc()
	}
}

func (r *Registry) Payment(status string, seconds float64) {
	if r != nil {
		r.Payments.WithLabelValues(status).Inc()
		r.PaymentLatencySec.Observe(seconds)
	}
}

func (r *Registry) SessionOpened() {
	if r != nil {
		r.ActiveSessions.Inc()
	}
}

func (r *Registry) SessionClosed() {
	if r != nil {
		r.ActiveSessions.Dec()
	}
}
