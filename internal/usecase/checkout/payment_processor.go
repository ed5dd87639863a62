package checkout

import (
	"context"
	"errors"
	"evaluation_orders/internal/domain/entities"
	"evaluation_orders/internal/domain/pricing"
	"evaluation_orders/internal/infrastructure/logger"
	"evaluation_orders/internal/usecase"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrNoOrder       = errors.New("checkout has no order yet")
	ErrCardNotReady  = errors.New("card input is not ready")
	ErrPaymentFailed = errors.New("payment failed")
)

// CardInput is what the embedded card widget hands over.
type CardInput struct {
	Ready           bool   `json:"ready"`
	Token           string `json:"token"`
	PaymentMethodID string `json:"payment_method_id"`
	Installments    int    `json:"installments"`
}

// PaymentError is a failed payment stage with the message shown to the user.
type PaymentError struct {
	Stage   string
	Message string
	Err     error
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment %s: %v", e.Stage, e.Err)
}

func (e *PaymentError) Unwrap() error { return e.Err }

func (e *PaymentError) Is(target error) bool { return target == ErrPaymentFailed }

type PaymentResult struct {
	PaymentIntentID string
	RedirectURL     string
}

// CompletionFunc runs once a payment is confirmed.
type CompletionFunc func(orderID string, paymentIntentID string)

// PaymentProcessor runs the payment stages of the final step. Nothing is
// rolled back when a later stage fails; the order keeps its pushed
// selection and can be resumed.
type PaymentProcessor struct {
	backend Backend
	log     *zap.Logger
}

func NewPaymentProcessor(backend Backend, log *zap.Logger) *PaymentProcessor {
	return &PaymentProcessor{backend: backend, log: logger.OrNop(log)}
}

func (p *PaymentProcessor) ProcessPayment(ctx context.Context, data entities.OrderData, orderID string, card *CardInput, onComplete CompletionFunc) (PaymentResult, error) {
	if orderID == "" {
		return PaymentResult{}, &PaymentError{Stage: "precondition", Message: "Please complete your contact details before paying.", Err: ErrNoOrder}
	}
	if card == nil || !card.Ready || strings.TrimSpace(card.Token) == "" {
		return PaymentResult{}, &PaymentError{Stage: "precondition", Message: "Please enter your card details.", Err: ErrCardNotReady}
	}
	log := p.log.With(zap.String("order_id", orderID))

	if err := p.backend.UpdateOrderServices(ctx, orderID, data.Services); err != nil {
		log.Warn("[checkout][payment] services update failed", zap.Error(err))
		return PaymentResult{}, &PaymentError{Stage: "services", Message: "We couldn't save your service selection. Please try again.", Err: err}
	}

	amount := pricing.AmountCents(data.Services)
	intent, err := p.backend.CreatePaymentIntent(ctx, orderID, amount, pricing.Currency, data.Services)
	if err != nil {
		log.Warn("[checkout][payment] intent creation failed", zap.Int64("amount_cents", amount), zap.Error(err))
		return PaymentResult{}, &PaymentError{Stage: "intent", Message: "We couldn't start your payment. Please try again.", Err: err}
	}

	payment, err := p.backend.ConfirmPayment(ctx, usecase.ConfirmPaymentInput{
		ClientSecret:    intent.ClientSecret,
		CardToken:       card.Token,
		PaymentMethodID: card.PaymentMethodID,
		Installments:    card.Installments,
		BillingName:     data.CustomerInfo.FullName(),
		BillingEmail:    data.CustomerInfo.Email,
	})
	if err != nil {
		log.Warn("[checkout][payment] confirmation failed", zap.String("intent_id", intent.ID), zap.Error(err))
		return PaymentResult{}, &PaymentError{Stage: "confirm", Message: gatewayMessage(err), Err: err}
	}
	if payment.Status != entities.PaymentStatusApproved {
		log.Info("[checkout][payment] payment not approved", zap.String("intent_id", intent.ID), zap.String("status", string(payment.Status)))
		return PaymentResult{}, &PaymentError{
			Stage:   "confirm",
			Message: fmt.Sprintf("Your payment is %s. We'll email you once it clears.", payment.Status),
			Err:     fmt.Errorf("payment status %s", payment.Status),
		}
	}

	if err := p.backend.SendReceiptEmail(ctx, orderID); err != nil {
		log.Warn("[checkout][payment] receipt email failed", zap.Error(err))
	}
	if onComplete != nil {
		onComplete(orderID, intent.ID)
	}
	log.Info("[checkout][payment] payment confirmed", zap.String("intent_id", intent.ID))
	return PaymentResult{
		PaymentIntentID: intent.ID,
		RedirectURL:     "/order-success?orderId=" + url.QueryEscape(orderID),
	}, nil
}

const genericPaymentMessage = "We couldn't confirm your payment. Please try again."

// gatewayMessage surfaces the provider's decline wording. Any other failure
// stays in the logs.
func gatewayMessage(err error) string {
	var declined *usecase.PaymentDeclinedError
	if errors.As(err, &declined) && declined.Detail != "" {
		return declined.Detail
	}
	return genericPaymentMessage
}
