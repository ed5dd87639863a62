package checkout

import (
	"context"
	"errors"
	"evaluation_orders/internal/domain/entities"
	"evaluation_orders/internal/usecase"
	"io"
	"sync"
	"time"
)

type fakeBackend struct {
	mu sync.Mutex

	orders map[string]*entities.OrderRecord

	createErr   error
	servicesErr error
	linkErr     error
	intentErr   error
	confirmErr  error
	confirmWith entities.PaymentStatus
	receiptErr  error

	createCalls    int
	servicesPushed []entities.ServiceInfo
	linked         []string
	intents        []int64
	confirms       []usecase.ConfirmPaymentInput
	receipts       []string
	abandoned      []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{orders: map[string]*entities.OrderRecord{}, confirmWith: entities.PaymentStatusApproved}
}

func (b *fakeBackend) CreateOrder(_ context.Context, customer entities.CustomerInfo) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.createCalls++
	if b.createErr != nil {
		return "", b.createErr
	}
	b.orders["order-1"] = &entities.OrderRecord{ID: "order-1", Status: entities.OrderStatusPending, Customer: customer}
	return "order-1", nil
}

func (b *fakeBackend) GetOrder(_ context.Context, id string) (*entities.OrderRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	o, ok := b.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (b *fakeBackend) UpdateOrderServices(_ context.Context, _ string, services entities.ServiceInfo) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.servicesErr != nil {
		return b.servicesErr
	}
	b.servicesPushed = append(b.servicesPushed, services)
	return nil
}

func (b *fakeBackend) UpdateOrderDocuments(_ context.Context, _ string, path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.linkErr != nil {
		return b.linkErr
	}
	b.linked = append(b.linked, path)
	return nil
}

func (b *fakeBackend) CreatePaymentIntent(_ context.Context, _ string, amountCents int64, currency string, _ entities.ServiceInfo) (usecase.PaymentIntent, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.intentErr != nil {
		return usecase.PaymentIntent{}, b.intentErr
	}
	b.intents = append(b.intents, amountCents)
	return usecase.PaymentIntent{ID: "pi_1", ClientSecret: "pi_1_secret", AmountCents: amountCents, Currency: currency}, nil
}

func (b *fakeBackend) ConfirmPayment(_ context.Context, in usecase.ConfirmPaymentInput) (entities.BillingPayment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.confirms = append(b.confirms, in)
	if b.confirmErr != nil {
		return entities.BillingPayment{}, b.confirmErr
	}
	return entities.BillingPayment{ID: "pi_1", Status: b.confirmWith}, nil
}

func (b *fakeBackend) SendReceiptEmail(_ context.Context, orderID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.receipts = append(b.receipts, orderID)
	return b.receiptErr
}

func (b *fakeBackend) SendAbandonedCartNotification(_ context.Context, _ entities.OrderData, sessionID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.abandoned = append(b.abandoned, sessionID)
	return nil
}

type fakeStorage struct {
	mu        sync.Mutex
	uploaded  map[string][]byte
	removed   []string
	uploadErr error
	removeErr error
	gate      chan struct{}
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploaded: map[string][]byte{}}
}

func (s *fakeStorage) Upload(_ context.Context, path string, body io.Reader, _ int64, _ string) (string, error) {
	if s.gate != nil {
		<-s.gate
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.uploaded[path] = b
	return path, nil
}

func (s *fakeStorage) Remove(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, path)
	return s.removeErr
}

func (s *fakeStorage) PublicURL(path string) string {
	return "https://files.example.com/" + path
}

type fakeAnalytics struct {
	mu     sync.Mutex
	events []entities.AnalyticsEvent
}

func (a *fakeAnalytics) Track(_ context.Context, e entities.AnalyticsEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, e)
	return errors.New("analytics offline")
}

// manualClock hands out timers that only fire when told to.
type manualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	d       time.Duration
	f       func()
	stopped bool
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	was := !t.stopped
	t.stopped = true
	return was
}

// FireAll runs every timer that was never stopped, including stale ones
// whose Stop lost the race, when includeStopped is set.
func (c *manualClock) FireAll(includeStopped bool) int {
	c.mu.Lock()
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.stopped || includeStopped {
			due = append(due, t)
		}
		t.stopped = true
	}
	c.timers = nil
	c.mu.Unlock()
	for _, t := range due {
		t.f()
	}
	return len(due)
}

func (c *manualClock) Armed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

func strPtr(s string) *string { return &s }
