package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"evaluation_orders/internal/domain/entities"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeWriter struct {
	msgs []kafka.Message
	fail bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.fail {
		return errors.New("broker down")
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func TestKafkaPublisher_PublishEmail(t *testing.T) {
	n := &fakeWriter{}
	p := newKafkaPublisherWith(n, &fakeWriter{}, nil)

	err := p.PublishEmail(context.Background(), entities.EmailNotification{
		Kind:       entities.EmailKindReceipt,
		To:         "ana@example.com",
		OrderID:    "ord-1",
		OccurredAt: time.Unix(0, 0).UTC(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(n.msgs) != 1 || string(n.msgs[0].Key) != "ord-1" {
		t.Fatalf("unexpected messages: %+v", n.msgs)
	}
	var got entities.EmailNotification
	if err := json.Unmarshal(n.msgs[0].Value, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Kind != entities.EmailKindReceipt || got.To != "ana@example.com" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestKafkaPublisher_KeysBySessionWithoutOrder(t *testing.T) {
	n := &fakeWriter{}
	p := newKafkaPublisherWith(n, &fakeWriter{}, nil)

	_ = p.PublishEmail(context.Background(), entities.EmailNotification{Kind: entities.EmailKindAbandonedCart, SessionID: "sess-9"})
	if len(n.msgs) != 1 || string(n.msgs[0].Key) != "sess-9" {
		t.Fatalf("expected session key, got %+v", n.msgs)
	}
}

func TestKafkaPublisher_Track(t *testing.T) {
	a := &fakeWriter{}
	p := newKafkaPublisherWith(&fakeWriter{}, a, nil)

	err := p.Track(context.Background(), entities.AnalyticsEvent{Name: entities.AnalyticsPurchase, OrderID: "ord-2", Value: 150, Currency: "USD"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.msgs) != 1 || string(a.msgs[0].Key) != "ord-2" {
		t.Fatalf("unexpected messages: %+v", a.msgs)
	}
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	p := newKafkaPublisherWith(&fakeWriter{fail: true}, &fakeWriter{fail: true}, nil)

	if err := p.PublishEmail(context.Background(), entities.EmailNotification{OrderID: "x"}); err == nil {
		t.Fatalf("expected publish error")
	}
	if err := p.Track(context.Background(), entities.AnalyticsEvent{Name: "x"}); err == nil {
		t.Fatalf("expected track error")
	}
}

func TestLogPublisher(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := NewLogPublisher(zap.New(core))

	_ = p.PublishEmail(context.Background(), entities.EmailNotification{Kind: entities.EmailKindReceipt, OrderID: "ord-3"})
	_ = p.Track(context.Background(), entities.AnalyticsEvent{Name: entities.AnalyticsCheckoutStarted})

	if logs.Len() != 2 {
		t.Fatalf("expected 2 log entries, got %d", logs.Len())
	}
	if logs.All()[0].ContextMap()["order_id"] != "ord-3" {
		t.Fatalf("unexpected fields: %v", logs.All()[0].ContextMap())
	}
}
