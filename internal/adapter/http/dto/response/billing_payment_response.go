package response

import (
	"evaluation_orders/internal/domain/entities"
	"evaluation_orders/internal/usecase"
	"time"
)

type BillingPaymentResponse struct {
	PaymentID         string            `json:"payment_id"`
	ID                string            `json:"id"`
	OrderID           string            `json:"order_id"`
	AmountCents       int64             `json:"amount_cents"`
	Amount            float64           `json:"amount"`
	Currency          string            `json:"currency"`
	PaymentDate       time.Time         `json:"payment_date"`
	Date              time.Time         `json:"date"`
	Status            string            `json:"status"`
	StatusDetail      string            `json:"status_detail,omitempty"`
	ProviderPaymentID string            `json:"provider_payment_id,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`

	MPPayloadRaw string                 `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}

func FromBillingPayment(p entities.BillingPayment) BillingPaymentResponse {
	return BillingPaymentResponse{
		PaymentID:         p.ID,
		ID:                p.ID,
		OrderID:           p.OrderID,
		AmountCents:       p.AmountCents,
		Amount:            p.Amount(),
		Currency:          p.Currency,
		PaymentDate:       p.Date,
		Date:              p.Date,
		Status:            string(p.Status),
		StatusDetail:      p.StatusDetail,
		ProviderPaymentID: p.ProviderPaymentID,
		Metadata:          p.Metadata,
		MPPayloadRaw:      string(p.MPPayloadRaw),
		MPPayload:         p.MPPayload,
	}
}

type PaymentIntentResponse struct {
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount_cents"`
	Currency     string `json:"currency"`
}

func FromPaymentIntent(pi usecase.PaymentIntent) PaymentIntentResponse {
	return PaymentIntentResponse{
		IntentID:     pi.ID,
		ClientSecret: pi.ClientSecret,
		AmountCents:  pi.AmountCents,
		Currency:     pi.Currency,
	}
}
