package entities

import (
	"encoding/json"
	"time"
)

// PaymentStatus represents the payment processing outcome.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusDenied   PaymentStatus = "denied"
)

// BillingPayment is a payment intent and, once confirmed, its outcome.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (order_id-index): order_id
//   - GSI2 (client_secret-index): client_secret
//
// OrderID is the reference the payment settles: an order id, or
// "quote:<id>" when a quote is paid directly.
//
// MercadoPago payload:
//   - MPPayloadRaw keeps the provider response body for traceability/audit.
//   - MPPayload is the parsed representation, useful for querying/debugging.
type BillingPayment struct {
	ID                string            `json:"id"`
	OrderID           string            `json:"order_id"`
	AmountCents       int64             `json:"amount_cents"`
	Currency          string            `json:"currency"`
	ClientSecret      string            `json:"-"`
	Status            PaymentStatus     `json:"status"`
	StatusDetail      string            `json:"status_detail,omitempty"`
	ProviderPaymentID string            `json:"provider_payment_id,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
	Date              time.Time         `json:"date"`

	MPPayloadRaw json.RawMessage        `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}

// Amount returns the amount in currency units as the provider expects it.
func (p BillingPayment) Amount() float64 {
	return float64(p.AmountCents) / 100
}
