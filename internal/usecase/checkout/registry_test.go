package checkout

import (
	"context"
	"evaluation_orders/internal/domain/entities"
	"net/url"
	"sync"
	"testing"
	"time"
)

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newSweptRegistry(t *testing.T, backend *fakeBackend) (*Registry, *stepClock) {
	t.Helper()
	clock := &stepClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	r := NewRegistry(Deps{
		Backend: backend,
		Storage: newFakeStorage(),
		Config: Config{
			AbandonedCartDelay:  10 * time.Minute,
			CompletedSessionTTL: time.Minute,
			SweepInterval:       time.Hour,
		},
	})
	r.now = clock.Now
	t.Cleanup(func() { r.CloseAll(context.Background()) })
	return r, clock
}

func TestRegistry_SweepDropsIdleCheckouts(t *testing.T) {
	r, clock := newSweptRegistry(t, newFakeBackend())

	idle, _ := r.Create(context.Background(), url.Values{})
	active, _ := r.Create(context.Background(), url.Values{})
	r.Create(context.Background(), url.Values{})
	if r.Len() != 3 {
		t.Fatalf("expected 3 checkouts, got %d", r.Len())
	}

	clock.Advance(15 * time.Minute)
	if _, err := r.Get(active.ID()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := r.Sweep(context.Background()); n != 0 {
		t.Fatalf("nothing is idle for twice the abandoned-cart delay yet, dropped %d", n)
	}

	clock.Advance(6 * time.Minute)
	if n := r.Sweep(context.Background()); n != 2 {
		t.Fatalf("expected 2 idle checkouts dropped, got %d", n)
	}
	if _, err := r.Get(idle.ID()); err == nil {
		t.Fatalf("idle checkout must be gone")
	}
	if _, err := r.Get(active.ID()); err != nil {
		t.Fatalf("recently used checkout must stay: %v", err)
	}
}

func TestRegistry_SweepDropsPaidCheckoutsAfterGrace(t *testing.T) {
	backend := newFakeBackend()
	backend.orders["o-1"] = &entities.OrderRecord{
		ID:       "o-1",
		Status:   entities.OrderStatusPendingPayment,
		Customer: entities.CustomerInfo{Email: "jane@example.com", FirstName: "Jane", LastName: "Doe"},
		Services: map[string]any{"type": "expert"},
	}
	r, clock := newSweptRegistry(t, backend)

	c, _ := r.Create(context.Background(), url.Values{"orderId": {"o-1"}})
	if err := c.Next(context.Background(), readyCard); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clock.Advance(30 * time.Second)
	if n := r.Sweep(context.Background()); n != 0 {
		t.Fatalf("paid checkout stays readable during the grace period, dropped %d", n)
	}
	if got, err := r.Get(c.ID()); err != nil || !got.View().Completed {
		t.Fatalf("expected the completed view, err=%v", err)
	}

	clock.Advance(time.Minute)
	if n := r.Sweep(context.Background()); n != 1 || r.Len() != 0 {
		t.Fatalf("paid checkout must be dropped after the grace period, dropped %d live %d", n, r.Len())
	}
}

func TestRegistry_BackgroundSweep(t *testing.T) {
	r := NewRegistry(Deps{
		Backend: newFakeBackend(),
		Storage: newFakeStorage(),
		Config:  Config{SessionIdleTTL: time.Millisecond, SweepInterval: 5 * time.Millisecond},
	})
	r.Create(context.Background(), url.Values{})

	deadline := time.Now().Add(2 * time.Second)
	for r.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("background sweep never dropped the idle checkout")
		}
		time.Sleep(5 * time.Millisecond)
	}

	r.CloseAll(context.Background())
	r.CloseAll(context.Background())
}
