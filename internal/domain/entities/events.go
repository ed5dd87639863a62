package entities

import "time"

// LineItem is one canonical priced row of an order.
type LineItem struct {
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type EmailKind string

const (
	EmailKindReceipt       EmailKind = "receipt"
	EmailKindAbandonedCart EmailKind = "abandoned_cart"
)

// EmailNotification is handed to the mailer through the notifications topic.
type EmailNotification struct {
	Kind       EmailKind      `json:"kind"`
	To         string         `json:"to"`
	OrderID    string         `json:"order_id,omitempty"`
	SessionID  string         `json:"session_id,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

const (
	AnalyticsCheckoutStarted = "checkout_started"
	AnalyticsPurchase        = "purchase"
)

// AnalyticsEvent is an ecommerce tracking event.
type AnalyticsEvent struct {
	Name       string     `json:"name"`
	OrderID    string     `json:"order_id,omitempty"`
	Value      float64    `json:"value"`
	Currency   string     `json:"currency"`
	Items      []LineItem `json:"items,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}
