// Package messaging publishes email notifications and analytics events.
package messaging

import (
	"context"
	"encoding/json"
	"evaluation_orders/internal/domain/entities"
	"evaluation_orders/internal/infrastructure/logger"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// messageWriter abstracts kafka.Writer for tests.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaPublisher writes notifications and analytics events to two topics,
// keyed by order (or session) so one order's events stay ordered.
type KafkaPublisher struct {
	notifications messageWriter
	analytics     messageWriter
	closers       []interface{ Close() error }
	log           *zap.Logger
}

func NewKafkaPublisher(brokers []string, notificationsTopic, analyticsTopic string, log *zap.Logger) *KafkaPublisher {
	n := newWriter(brokers, notificationsTopic)
	a := newWriter(brokers, analyticsTopic)
	p := newKafkaPublisherWith(n, a, log)
	p.closers = []interface{ Close() error }{n, a}
	return p
}

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
}

func newKafkaPublisherWith(notifications, analytics messageWriter, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{notifications: notifications, analytics: analytics, log: logger.OrNop(log)}
}

func (p *KafkaPublisher) PublishEmail(ctx context.Context, n entities.EmailNotification) error {
	key := n.OrderID
	if key == "" {
		key = n.SessionID
	}
	if err := write(ctx, p.notifications, key, n); err != nil {
		p.log.Error("[notification][kafka] publish failed", zap.String("kind", string(n.Kind)), zap.String("order_id", n.OrderID), zap.Error(err))
		return err
	}
	p.log.Info("[notification][kafka] published", zap.String("kind", string(n.Kind)), zap.String("order_id", n.OrderID))
	return nil
}

func (p *KafkaPublisher) Track(ctx context.Context, e entities.AnalyticsEvent) error {
	if err := write(ctx, p.analytics, e.OrderID, e); err != nil {
		p.log.Warn("[analytics][kafka] publish failed", zap.String("event", e.Name), zap.Error(err))
		return err
	}
	p.log.Debug("[analytics][kafka] published", zap.String("event", e.Name), zap.String("order_id", e.OrderID))
	return nil
}

func (p *KafkaPublisher) Close() error {
	var first error
	for _, c := range p.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func write(ctx context.Context, w messageWriter, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return w.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: b})
}

// LogPublisher stands in when no brokers are configured: events are only
// logged.
type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: logger.OrNop(log)}
}

func (p *LogPublisher) PublishEmail(_ context.Context, n entities.EmailNotification) error {
	p.log.Info("[notification][log] email",
		zap.String("kind", string(n.Kind)),
		zap.String("to", n.To),
		zap.String("order_id", n.OrderID),
		zap.String("session_id", n.SessionID),
	)
	return nil
}

func (p *LogPublisher) Track(_ context.Context, e entities.AnalyticsEvent) error {
	p.log.Info("[analytics][log] event",
		zap.String("event", e.Name),
		zap.String("order_id", e.OrderID),
		zap.Float64("value", e.Value),
		zap.String("currency", e.Currency),
		zap.Int("items", len(e.Items)),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
