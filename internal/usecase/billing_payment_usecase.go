package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"evaluation_orders/internal/domain/entities"
	"evaluation_orders/internal/domain/pricing"
	"evaluation_orders/internal/infrastructure/logger"
	"evaluation_orders/internal/infrastructure/metrics"
	"evaluation_orders/internal/usecase/interfaces"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuoteReferencePrefix marks a payment reference that settles a quote
// instead of an order.
const QuoteReferencePrefix = "quote:"

var (
	ErrBillingPaymentNotFound         = errors.New("billing payment not found")
	ErrPaymentIntentNotFound          = errors.New("payment intent not found")
	ErrInvalidPaymentReference        = errors.New("invalid order reference")
	ErrInvalidPaymentAmount           = errors.New("invalid payment amount")
	ErrPaymentAmountMismatch          = errors.New("payment amount does not match order price")
	ErrInvalidPaymentPayload          = errors.New("invalid payment confirmation")
	ErrPaymentAlreadyConfirmed        = errors.New("payment already confirmed")
	ErrPaymentDeclined                = errors.New("payment declined")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// PaymentDeclinedError carries the provider's decline detail verbatim.
type PaymentDeclinedError struct {
	Status string
	Detail string
}

func (e *PaymentDeclinedError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("payment declined: %s", e.Status)
	}
	return fmt.Sprintf("payment declined: %s", e.Detail)
}

func (e *PaymentDeclinedError) Is(target error) bool { return target == ErrPaymentDeclined }

type PaymentIntentInput struct {
	OrderID     string               `json:"order_id"`
	AmountCents int64                `json:"amount_cents"`
	Currency    string               `json:"currency"`
	Services    entities.ServiceInfo `json:"services"`
}

type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount_cents"`
	Currency     string `json:"currency"`
}

// ConfirmPaymentInput is what the card widget produces plus the billing
// identity attached to the charge.
type ConfirmPaymentInput struct {
	ClientSecret    string `json:"client_secret"`
	CardToken       string `json:"card_token"`
	PaymentMethodID string `json:"payment_method_id"`
	Installments    int    `json:"installments"`
	BillingName     string `json:"billing_name"`
	BillingEmail    string `json:"billing_email"`
}

// IBillingPaymentUseCase encapsulates the payment-intent flow.
//
//   - CreatePaymentIntent reserves an amount for an order and hands back the
//     client secret the card widget confirms with.
//   - ConfirmPayment charges the card through the provider and records the outcome.

type IBillingPaymentUseCase interface {
	CreatePaymentIntent(ctx context.Context, in PaymentIntentInput) (PaymentIntent, error)
	ConfirmPayment(ctx context.Context, in ConfirmPaymentInput) (entities.BillingPayment, error)
	GetByID(ctx context.Context, id string) (entities.BillingPayment, error)
	ListByOrderID(ctx context.Context, orderID string) ([]entities.BillingPayment, error)
}

type BillingPaymentUseCase struct {
	repo    interfaces.IBillingPaymentRepository
	orders  interfaces.IOrderRepository
	quotes  interfaces.IQuoteRepository
	gateway interfaces.IPaymentGateway
	metrics *metrics.Registry
	log     *zap.Logger
}

var _ IBillingPaymentUseCase = (*BillingPaymentUseCase)(nil)

func NewBillingPaymentUseCase(
	repo interfaces.IBillingPaymentRepository,
	orders interfaces.IOrderRepository,
	quotes interfaces.IQuoteRepository,
	gateway interfaces.IPaymentGateway,
	m *metrics.Registry,
	log *zap.Logger,
) *BillingPaymentUseCase {
	return &BillingPaymentUseCase{repo: repo, orders: orders, quotes: quotes, gateway: gateway, metrics: m, log: logger.OrNop(log)}
}

func (u *BillingPaymentUseCase) CreatePaymentIntent(ctx context.Context, in PaymentIntentInput) (PaymentIntent, error) {
	ref := strings.TrimSpace(in.OrderID)
	u.log.Info("[payment][usecase] create-intent start", zap.String("order_id", ref), zap.Int64("amount_cents", in.AmountCents))
	if ref == "" || ref == QuoteReferencePrefix {
		return PaymentIntent{}, ErrInvalidPaymentReference
	}
	if in.AmountCents <= 0 {
		return PaymentIntent{}, ErrInvalidPaymentAmount
	}
	currency := strings.ToLower(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = pricing.Currency
	}

	// The source of truth for amount is the stored selection, not the client.
	expected, err := u.expectedAmount(ctx, ref, in.Services)
	if err != nil {
		return PaymentIntent{}, err
	}
	if expected != in.AmountCents {
		u.log.Warn("[payment][usecase] amount mismatch", zap.String("order_id", ref), zap.Int64("expected", expected), zap.Int64("got", in.AmountCents))
		return PaymentIntent{}, ErrPaymentAmountMismatch
	}

	id := "pi_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	p := entities.BillingPayment{
		ID:           id,
		OrderID:      ref,
		AmountCents:  in.AmountCents,
		Currency:     currency,
		ClientSecret: id + "_secret_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		Status:       entities.PaymentStatusPending,
		Metadata: map[string]string{
			"service_type":  string(in.Services.Type),
			"urgency":       string(in.Services.Urgency),
			"delivery_type": string(in.Services.DeliveryType),
		},
		Date: time.Now().UTC(),
	}
	created, err := u.repo.Create(ctx, p)
	if err != nil {
		u.log.Error("[payment][usecase] intent repository create failed", zap.String("order_id", ref), zap.Error(err))
		return PaymentIntent{}, err
	}

	if !strings.HasPrefix(ref, QuoteReferencePrefix) && u.orders != nil {
		if _, err := u.orders.UpdateStatus(ctx, ref, entities.OrderStatusPendingPayment); err != nil {
			u.log.Warn("[payment][usecase] order status update failed", zap.String("order_id", ref), zap.Error(err))
		}
	}

	u.log.Info("[payment][usecase] create-intent success", zap.String("order_id", ref), zap.String("intent_id", created.ID))
	return PaymentIntent{ID: created.ID, ClientSecret: p.ClientSecret, AmountCents: created.AmountCents, Currency: created.Currency}, nil
}

// expectedAmount resolves the price of the referenced order or quote.
// Orders are priced from the selection the caller just pushed, falling back
// to the stored record when the caller sent none.
func (u *BillingPaymentUseCase) expectedAmount(ctx context.Context, ref string, services entities.ServiceInfo) (int64, error) {
	if quoteID, ok := strings.CutPrefix(ref, QuoteReferencePrefix); ok {
		if u.quotes == nil {
			return 0, errors.New("quote repository not configured")
		}
		q, err := u.quotes.GetByID(ctx, quoteID)
		if err != nil {
			return 0, err
		}
		if q.ID == "" {
			return 0, ErrQuoteNotFound
		}
		return pricing.ToCents(q.Price), nil
	}

	if u.orders == nil {
		return 0, errors.New("order repository not configured")
	}
	o, err := u.orders.GetByID(ctx, ref)
	if err != nil {
		return 0, err
	}
	if o.ID == "" {
		return 0, ErrOrderNotFound
	}
	if !services.Type.Valid() {
		services = entities.ServiceInfoFromRecord(o.Services)
	}
	return pricing.AmountCents(services), nil
}

func (u *BillingPaymentUseCase) ConfirmPayment(ctx context.Context, in ConfirmPaymentInput) (entities.BillingPayment, error) {
	start := time.Now()
	secret := strings.TrimSpace(in.ClientSecret)
	if secret == "" || strings.TrimSpace(in.CardToken) == "" {
		return entities.BillingPayment{}, ErrInvalidPaymentPayload
	}
	if u.gateway == nil {
		u.log.Error("[payment][usecase] gateway not configured")
		return entities.BillingPayment{}, errors.New("payment gateway not configured")
	}

	intent, err := u.repo.GetByClientSecret(ctx, secret)
	if err != nil {
		return entities.BillingPayment{}, err
	}
	if intent.ID == "" {
		return entities.BillingPayment{}, ErrPaymentIntentNotFound
	}
	if intent.Status == entities.PaymentStatusApproved {
		return entities.BillingPayment{}, ErrPaymentAlreadyConfirmed
	}

	reqMap := buildProviderPayload(intent, in)
	ensurePayerDefaults(reqMap)
	if !hasPayer(reqMap) {
		u.log.Warn("[payment][usecase] missing payer", zap.String("intent_id", intent.ID))
		return entities.BillingPayment{}, ErrInvalidPaymentPayload
	}
	payload, err := json.Marshal(reqMap)
	if err != nil {
		return entities.BillingPayment{}, err
	}

	u.log.Info("[payment][usecase] calling payment gateway", zap.String("intent_id", intent.ID), zap.String("order_id", intent.OrderID))
	providerPaymentID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, payload)
	if err != nil {
		u.log.Warn("[payment][usecase] payment gateway failed", zap.String("intent_id", intent.ID), zap.Error(err))
		u.metrics.Payment("error", time.Since(start).Seconds())
		return entities.BillingPayment{}, mapGatewayError(err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		u.log.Warn("[payment][usecase] provider response unmarshal failed", zap.String("intent_id", intent.ID), zap.Error(err))
	}

	intent.Status = paymentStatusFromProvider(providerStatus)
	intent.ProviderPaymentID = providerPaymentID
	intent.StatusDetail = statusDetail(parsed, providerStatus)
	intent.MPPayloadRaw = providerResp
	intent.MPPayload = parsed
	intent.Date = time.Now().UTC()

	updated, err := u.repo.UpdateOutcome(ctx, intent)
	if err != nil {
		u.log.Error("[payment][usecase] payment repository update failed", zap.String("intent_id", intent.ID), zap.Error(err))
		return entities.BillingPayment{}, err
	}
	u.metrics.Payment(string(updated.Status), time.Since(start).Seconds())

	switch updated.Status {
	case entities.PaymentStatusApproved:
		u.settleReference(ctx, updated.OrderID)
	case entities.PaymentStatusDenied:
		return updated, &PaymentDeclinedError{Status: providerStatus, Detail: updated.StatusDetail}
	}

	u.log.Info("[payment][usecase] confirm finished", zap.String("intent_id", updated.ID), zap.String("status", string(updated.Status)))
	return updated, nil
}

func (u *BillingPaymentUseCase) settleReference(ctx context.Context, ref string) {
	if quoteID, ok := strings.CutPrefix(ref, QuoteReferencePrefix); ok {
		if u.quotes == nil {
			return
		}
		if _, err := u.quotes.UpdateStatusByID(ctx, quoteID, entities.QuoteStatusApproved); err != nil {
			u.log.Warn("[payment][usecase] quote status update failed", zap.String("quote_id", quoteID), zap.Error(err))
		}
		return
	}
	if u.orders == nil {
		return
	}
	if _, err := u.orders.UpdateStatus(ctx, ref, entities.OrderStatusProcessing); err != nil {
		u.log.Warn("[payment][usecase] order status update failed", zap.String("order_id", ref), zap.Error(err))
	}
}

func buildProviderPayload(intent entities.BillingPayment, in ConfirmPaymentInput) map[string]any {
	installments := in.Installments
	if installments <= 0 {
		installments = 1
	}
	payer := map[string]any{}
	if email := strings.TrimSpace(in.BillingEmail); email != "" {
		payer["email"] = email
	}
	if name := strings.TrimSpace(in.BillingName); name != "" {
		first, last, _ := strings.Cut(name, " ")
		payer["first_name"] = first
		if last != "" {
			payer["last_name"] = strings.TrimSpace(last)
		}
	}

	metadata := map[string]any{"intent_id": intent.ID}
	for k, v := range intent.Metadata {
		metadata[k] = v
	}

	req := map[string]any{
		"transaction_amount": intent.Amount(),
		"token":              strings.TrimSpace(in.CardToken),
		"installments":       installments,
		"external_reference": intent.OrderID,
		"description":        fmt.Sprintf("Order %s", intent.OrderID),
		"payer":              payer,
		"metadata":           metadata,
	}
	if pm := strings.TrimSpace(in.PaymentMethodID); pm != "" {
		req["payment_method_id"] = pm
	}
	return req
}

func paymentStatusFromProvider(status string) entities.PaymentStatus {
	switch strings.ToLower(status) {
	case "approved":
		return entities.PaymentStatusApproved
	case "rejected", "cancelled", "refunded", "charged_back":
		return entities.PaymentStatusDenied
	}
	return entities.PaymentStatusPending
}

func statusDetail(parsed map[string]interface{}, providerStatus string) string {
	if hasNonEmptyString(parsed, "status_detail") {
		return parsed["status_detail"].(string)
	}
	return providerStatus
}

func mapGatewayError(err error) error {
	switch {
	case isGatewayCustomerNotFound(err):
		return ErrPaymentGatewayCustomerNotFound
	case isGatewayInvalidUsers(err):
		return ErrPaymentGatewayInvalidUsers
	case isGatewayUnauthorized(err):
		return ErrPaymentGatewayUnauthorized
	case isGatewayBadRequest(err):
		return ErrPaymentGatewayBadRequest
	}
	return err
}

func hasNonEmptyString(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	v, ok := m["payer"]
	if !ok {
		return false
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email")
}

func ensurePayerDefaults(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}

	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}

	// Sandbox tokens only accept test payers.
	if !hasNonEmptyString(payer, "email") {
		if email := strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL")); email != "" {
			payer["email"] = email
		} else if strings.HasPrefix(strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")), "TEST-") {
			payer["email"] = "test_user_br@testuser.com"
		}
	}
}

func isGatewayBadRequest(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}

func isGatewayInvalidUsers(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034")
}

func isGatewayCustomerNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002")
}

func (u *BillingPaymentUseCase) GetByID(ctx context.Context, id string) (entities.BillingPayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.BillingPayment{}, errors.New("invalid payment id")
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.BillingPayment{}, err
	}
	if p.ID == "" {
		return entities.BillingPayment{}, ErrBillingPaymentNotFound
	}
	return p, nil
}

func (u *BillingPaymentUseCase) ListByOrderID(ctx context.Context, orderID string) ([]entities.BillingPayment, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, ErrInvalidPaymentReference
	}
	return u.repo.ListByOrderID(ctx, orderID)
}
