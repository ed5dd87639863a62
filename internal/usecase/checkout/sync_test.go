package checkout

import (
	"context"
	"errors"
	"evaluation_orders/internal/domain/entities"
	"testing"
	"time"
)

func newTestSyncer(orderID string, push func(context.Context, string, entities.ServiceInfo) error) (*ServicesSyncer, *manualClock) {
	clock := &manualClock{}
	s := NewServicesSyncer(time.Second, NewOrderSession(orderID), func() entities.ServiceInfo {
		return entities.ServiceInfo{Type: entities.ServiceTypeExpert}
	}, push, nil)
	s.afterFunc = clock.AfterFunc
	return s, clock
}

func TestServicesSyncer_DebouncesEdits(t *testing.T) {
	pushes := 0
	s, clock := newTestSyncer("o-1", func(_ context.Context, id string, _ entities.ServiceInfo) error {
		if id != "o-1" {
			t.Fatalf("unexpected order id %s", id)
		}
		pushes++
		return nil
	})

	for i := 0; i < 5; i++ {
		s.Schedule()
	}
	if clock.Armed() != 1 {
		t.Fatalf("expected one pending flush, got %d", clock.Armed())
	}
	clock.FireAll(true)
	if pushes != 1 || s.Pending() {
		t.Fatalf("expected a single push, got %d", pushes)
	}
}

func TestServicesSyncer_FlushWithoutOrderKeepsPending(t *testing.T) {
	s, _ := newTestSyncer("", func(context.Context, string, entities.ServiceInfo) error {
		t.Fatalf("no push without an order id")
		return nil
	})
	s.Schedule()
	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Pending() {
		t.Fatalf("selection must stay pending until an order exists")
	}
}

func TestServicesSyncer_FailedFlushStaysPending(t *testing.T) {
	s, _ := newTestSyncer("o-1", func(context.Context, string, entities.ServiceInfo) error {
		return errors.New("backend down")
	})
	s.Schedule()
	if err := s.Flush(context.Background()); err == nil {
		t.Fatalf("expected push error")
	}
	if !s.Pending() {
		t.Fatalf("failed push must leave the selection pending")
	}

	s.Discard()
	if s.Pending() {
		t.Fatalf("Discard must clear the pending selection")
	}
}
