package checkout

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
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	ErrValidation        = errors.New("missing required customer information")
	ErrOrderCreation     = errors.New("order creation failed")
	ErrCheckoutCompleted = errors.New("checkout already completed")
)

// Config tunes the per-checkout timers, upload limits and how long the
// registry keeps idle or paid checkouts.
type Config struct {
	AbandonedCartDelay   time.Duration
	ServicesSyncInterval time.Duration
	UploadConcurrency    int
	MaxUploadBytes       int64

	SessionIdleTTL      time.Duration
	CompletedSessionTTL time.Duration
	SweepInterval       time.Duration
}

func DefaultConfig() Config {
	return Config{
		AbandonedCartDelay:   DefaultAbandonedCartDelay,
		ServicesSyncInterval: DefaultServicesSyncInterval,
		UploadConcurrency:    DefaultUploadConcurrency,
		MaxUploadBytes:       DefaultMaxUploadBytes,
		SessionIdleTTL:       2 * DefaultAbandonedCartDelay,
		CompletedSessionTTL:  DefaultCompletedSessionTTL,
		SweepInterval:        DefaultSweepInterval,
	}
}

// Deps are shared by every checkout of the process.
type Deps struct {
	Backend    Backend
	Storage    interfaces.IObjectStorage
	Analytics  interfaces.IAnalyticsTracker
	Metrics    *metrics.Registry
	Log        *zap.Logger
	Config     Config
	OnComplete CompletionFunc
}

// Controller is one checkout: the step state machine plus the order data,
// uploads, idle tracking and services sync it coordinates.
type Controller struct {
	id string

	transition sync.Mutex
	mu         sync.Mutex
	step       Step
	lastErr    string
	completed  bool
	result     PaymentResult
	paidOrder  string

	now         func() time.Time
	seenAt      time.Time
	completedAt time.Time

	store     *Store
	session   *OrderSession
	uploads   *UploadManager
	tracker   *AbandonedCartTracker
	syncer    *ServicesSyncer
	payments  *PaymentProcessor
	backend   Backend
	analytics interfaces.IAnalyticsTracker
	metrics   *metrics.Registry
	log       *zap.Logger

	onComplete CompletionFunc
}

func NewController(id string, deps Deps, initial entities.OrderData, orderID string) *Controller {
	log := logger.OrNop(deps.Log).With(zap.String("checkout_id", id))
	store := NewStore(initial)
	session := NewOrderSession(orderID)

	c := &Controller{
		id:         id,
		store:      store,
		session:    session,
		backend:    deps.Backend,
		analytics:  deps.Analytics,
		metrics:    deps.Metrics,
		log:        log,
		onComplete: deps.OnComplete,
		now:        time.Now,
	}
	c.seenAt = c.now()
	c.uploads = NewUploadManager(store, session, deps.Storage, deps.Backend.UpdateOrderDocuments,
		deps.Config.UploadConcurrency, deps.Config.MaxUploadBytes, deps.Metrics, log)
	c.tracker = NewAbandonedCartTracker(deps.Config.AbandonedCartDelay, store.Snapshot,
		deps.Backend.SendAbandonedCartNotification, log)
	c.syncer = NewServicesSyncer(deps.Config.ServicesSyncInterval, session,
		func() entities.ServiceInfo { return store.Snapshot().Services },
		deps.Backend.UpdateOrderServices, log)
	c.payments = NewPaymentProcessor(deps.Backend, log)
	return c
}

func (c *Controller) ID() string { return c.id }

func (c *Controller) Store() *Store { return c.store }

func (c *Controller) Session() *OrderSession { return c.session }

func (c *Controller) Tracker() *AbandonedCartTracker { return c.tracker }

func (c *Controller) Uploads() *UploadManager { return c.uploads }

func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Seed sets the starting step of a resumed checkout.
func (c *Controller) Seed(step Step) {
	if !step.Valid() {
		return
	}
	c.mu.Lock()
	c.step = step
	c.mu.Unlock()
}

// Next runs the side effects of the current step and advances. card is
// only read on the payment step. A failed step stays put with its message
// on the view.
func (c *Controller) Next(ctx context.Context, card *CardInput) error {
	c.transition.Lock()
	defer c.transition.Unlock()

	c.mu.Lock()
	if c.completed {
		c.mu.Unlock()
		return ErrCheckoutCompleted
	}
	step := c.step
	c.lastErr = ""
	c.mu.Unlock()

	var err error
	switch step {
	case StepCustomerInfo:
		err = c.completeCustomerInfo(ctx)
	case StepServiceAndDocuments, StepDelivery:
		if ferr := c.syncer.Flush(ctx); ferr != nil {
			c.log.Warn("[checkout][controller] services sync on transition failed", zap.Int("step", int(step)), zap.Error(ferr))
		}
	case StepPayment:
		return c.pay(ctx, card)
	}
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.step = step + 1
	c.mu.Unlock()
	c.tracker.MarkAsActive()
	return nil
}

func (c *Controller) completeCustomerInfo(ctx context.Context) error {
	if c.session.OrderID() != "" {
		return nil
	}
	data := c.store.Snapshot()
	if err := data.CustomerInfo.Validate(); err != nil {
		var verr *entities.ValidationError
		msg := "Please fill in your first name, last name and a valid email."
		if errors.As(err, &verr) {
			msg = "Please check these fields: " + strings.Join(verr.Fields, ", ") + "."
		}
		c.setError(msg)
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	orderID, err := c.backend.CreateOrder(ctx, data.CustomerInfo)
	if err != nil {
		c.log.Warn("[checkout][controller] order creation failed", zap.Error(err))
		c.setError("We couldn't create your order. Please try again.")
		return fmt.Errorf("%w: %v", ErrOrderCreation, err)
	}
	c.session.Set(orderID)
	c.log.Info("[checkout][controller] order created", zap.String("order_id", orderID))
	c.trackCheckoutStarted(ctx, orderID, data.Services)
	c.uploads.LinkPending(ctx)

	// Edits made before the order existed are pushed on the next flush.
	return nil
}

func (c *Controller) trackCheckoutStarted(ctx context.Context, orderID string, services entities.ServiceInfo) {
	c.metrics.CheckoutStartedInc()
	if c.analytics == nil {
		return
	}
	ev := entities.AnalyticsEvent{
		Name:       entities.AnalyticsCheckoutStarted,
		OrderID:    orderID,
		Value:      pricing.CalculatePrice(services),
		Currency:   pricing.Currency,
		Items:      pricing.LineItems(services),
		OccurredAt: time.Now().UTC(),
	}
	if err := c.analytics.Track(ctx, ev); err != nil {
		c.log.Warn("[checkout][controller] checkout_started tracking failed", zap.String("order_id", orderID), zap.Error(err))
	}
}

func (c *Controller) pay(ctx context.Context, card *CardInput) error {
	orderID := c.session.OrderID()
	// The processor pushes the final selection itself.
	c.syncer.Discard()

	res, err := c.payments.ProcessPayment(ctx, c.store.Snapshot(), orderID, card, c.onComplete)
	if err != nil {
		msg := "Payment failed. Please try again."
		var perr *PaymentError
		if errors.As(err, &perr) {
			msg = perr.Message
		}
		c.setError(msg)
		return err
	}

	c.tracker.StopTracking()
	c.mu.Lock()
	c.completed = true
	c.completedAt = c.now()
	c.result = res
	c.paidOrder = orderID
	c.mu.Unlock()
	c.session.Clear()
	return nil
}

// Back steps back once. Nothing is sent to the backend.
func (c *Controller) Back() {
	c.transition.Lock()
	defer c.transition.Unlock()

	c.mu.Lock()
	if c.completed || c.step == StepCustomerInfo {
		c.mu.Unlock()
		return
	}
	c.step--
	c.lastErr = ""
	c.mu.Unlock()
	c.tracker.MarkAsActive()
}

// Edit merges a partial section update. Service edits are synced on the
// debounce interval.
func (c *Controller) Edit(section Section, raw json.RawMessage) error {
	if c.isCompleted() {
		return ErrCheckoutCompleted
	}
	if err := c.store.UpdateSection(section, raw); err != nil {
		return err
	}
	if section == SectionServices {
		c.syncer.Schedule()
	}
	c.tracker.MarkAsActive()
	return nil
}

func (c *Controller) AddFiles(ctx context.Context, files []FileUpload) ([]entities.DocumentState, error) {
	if c.isCompleted() {
		return nil, ErrCheckoutCompleted
	}
	docs := c.uploads.AddFiles(ctx, files)
	c.tracker.MarkAsActive()
	return docs, nil
}

func (c *Controller) RemoveDocument(ctx context.Context, docID string) error {
	if c.isCompleted() {
		return ErrCheckoutCompleted
	}
	if err := c.uploads.RemoveDocument(ctx, docID); err != nil {
		return err
	}
	c.tracker.MarkAsActive()
	return nil
}

func (c *Controller) RecordActivity(kind ActivityKind) error {
	return c.tracker.RecordActivity(kind)
}

func (c *Controller) MarkAsActive() {
	c.tracker.MarkAsActive()
}

// Close is the unmount: the tracker stops and pending edits are flushed.
// Uploads already in flight are left to finish.
func (c *Controller) Close(ctx context.Context) {
	c.tracker.StopTracking()
	if err := c.syncer.Flush(ctx); err != nil {
		c.log.Warn("[checkout][controller] services sync on close failed", zap.Error(err))
	}
}

// touch records client traffic for the registry sweep.
func (c *Controller) touch() {
	c.mu.Lock()
	c.seenAt = c.now()
	c.mu.Unlock()
}

// expired reports whether the registry may drop the checkout: a paid one
// after completedTTL, any other after idleTTL without traffic.
func (c *Controller) expired(now time.Time, idleTTL, completedTTL time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.completed {
		return now.Sub(c.completedAt) >= completedTTL
	}
	return now.Sub(c.seenAt) >= idleTTL
}

func (c *Controller) setError(msg string) {
	c.mu.Lock()
	c.lastErr = msg
	c.mu.Unlock()
}

func (c *Controller) isCompleted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completed
}

type StepView struct {
	Step       Step       `json:"step"`
	Name       string     `json:"name"`
	Completion Completion `json:"completion"`
}

// View is the read model the client renders.
type View struct {
	ID              string             `json:"id"`
	OrderID         string             `json:"order_id,omitempty"`
	Step            Step               `json:"step"`
	StepName        string             `json:"step_name"`
	Steps           []StepView         `json:"steps"`
	Data            entities.OrderData `json:"data"`
	Price           float64            `json:"price"`
	AmountCents     int64              `json:"amount_cents"`
	Currency        string             `json:"currency"`
	Error           string             `json:"error,omitempty"`
	Completed       bool               `json:"completed"`
	PaymentIntentID string             `json:"payment_intent_id,omitempty"`
	RedirectURL     string             `json:"redirect_url,omitempty"`
}

func (c *Controller) View() View {
	data := c.store.Snapshot()

	c.mu.Lock()
	v := View{
		ID:              c.id,
		OrderID:         c.session.OrderID(),
		Step:            c.step,
		StepName:        c.step.String(),
		Error:           c.lastErr,
		Completed:       c.completed,
		PaymentIntentID: c.result.PaymentIntentID,
		RedirectURL:     c.result.RedirectURL,
	}
	if c.completed {
		v.OrderID = c.paidOrder
	}
	c.mu.Unlock()

	v.Data = data
	v.Price = pricing.CalculatePrice(data.Services)
	v.AmountCents = pricing.AmountCents(data.Services)
	v.Currency = pricing.Currency
	v.Steps = make([]StepView, 0, stepCount)
	for s := StepCustomerInfo; s <= StepPayment; s++ {
		completion := StepCompletionStatus(s, data)
		if s == StepPayment && v.Completed {
			completion = CompletionComplete
		}
		v.Steps = append(v.Steps, StepView{Step: s, Name: s.String(), Completion: completion})
	}
	return v
}
