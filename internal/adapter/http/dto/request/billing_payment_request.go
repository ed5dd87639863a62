package request

import (
	"evaluation_orders/internal/usecase"
	"strings"
)

// PaymentIntentRequest reserves an amount for an order, or for a quote with
// a "quote:<id>" reference. Services, when sent, must price to the amount.
type PaymentIntentRequest struct {
	OrderID     string           `json:"order_id" binding:"required"`
	AmountCents int64            `json:"amount_cents" binding:"required,gt=0"`
	Currency    string           `json:"currency"`
	Services    *ServicesRequest `json:"services"`
}

func (r PaymentIntentRequest) ToInput() usecase.PaymentIntentInput {
	in := usecase.PaymentIntentInput{
		OrderID:     strings.TrimSpace(r.OrderID),
		AmountCents: r.AmountCents,
		Currency:    r.Currency,
	}
	if r.Services != nil {
		in.Services = r.Services.ToServiceInfo()
	}
	return in
}

// ConfirmPaymentRequest is the card widget result for an intent.
type ConfirmPaymentRequest struct {
	ClientSecret    string `json:"client_secret" binding:"required"`
	CardToken       string `json:"card_token" binding:"required"`
	PaymentMethodID string `json:"payment_method_id"`
	Installments    int    `json:"installments" binding:"omitempty,min=1"`
	BillingName     string `json:"billing_name"`
	BillingEmail    string `json:"billing_email" binding:"omitempty,email"`
}

func (r ConfirmPaymentRequest) ToInput() usecase.ConfirmPaymentInput {
	return usecase.ConfirmPaymentInput{
		ClientSecret:    strings.TrimSpace(r.ClientSecret),
		CardToken:       strings.TrimSpace(r.CardToken),
		PaymentMethodID: strings.TrimSpace(r.PaymentMethodID),
		Installments:    r.Installments,
		BillingName:     strings.TrimSpace(r.BillingName),
		BillingEmail:    strings.TrimSpace(r.BillingEmail),
	}
}
