package checkout

import (
	"context"
	"evaluation_orders/internal/domain/entities"
	"evaluation_orders/internal/infrastructure/logger"
	"sync"
	"time"

	"go.uber.org/zap"
)

const DefaultServicesSyncInterval = 2 * time.Second

// ServicesSyncer batches service edits into one backend write per interval.
// Step transitions call Flush to push immediately.
type ServicesSyncer struct {
	mu        sync.Mutex
	flushMu   sync.Mutex
	interval  time.Duration
	afterFunc AfterFunc
	session   *OrderSession
	services  func() entities.ServiceInfo
	push      func(ctx context.Context, orderID string, services entities.ServiceInfo) error
	log       *zap.Logger

	timer Timer
	gen   uint64
	dirty bool
}

func NewServicesSyncer(
	interval time.Duration,
	session *OrderSession,
	services func() entities.ServiceInfo,
	push func(ctx context.Context, orderID string, services entities.ServiceInfo) error,
	log *zap.Logger,
) *ServicesSyncer {
	if interval <= 0 {
		interval = DefaultServicesSyncInterval
	}
	return &ServicesSyncer{
		interval:  interval,
		afterFunc: realAfterFunc,
		session:   session,
		services:  services,
		push:      push,
		log:       logger.OrNop(log),
	}
}

// Schedule marks the selection dirty and restarts the debounce window.
func (s *ServicesSyncer) Schedule() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = true
	s.stopLocked()
	gen := s.gen
	s.timer = s.afterFunc(s.interval, func() {
		s.mu.Lock()
		stale := gen != s.gen
		s.mu.Unlock()
		if stale {
			return
		}
		if err := s.Flush(context.Background()); err != nil {
			s.log.Warn("[checkout][sync] debounced services sync failed", zap.Error(err))
		}
	})
}

// Flush pushes a pending selection now. Without an order id the selection
// stays pending.
func (s *ServicesSyncer) Flush(ctx context.Context) error {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	s.mu.Lock()
	s.stopLocked()
	orderID := s.session.OrderID()
	if !s.dirty || orderID == "" {
		s.mu.Unlock()
		return nil
	}
	s.dirty = false
	s.mu.Unlock()

	if err := s.push(ctx, orderID, s.services()); err != nil {
		s.mu.Lock()
		s.dirty = true
		s.mu.Unlock()
		return err
	}
	s.log.Debug("[checkout][sync] services pushed", zap.String("order_id", orderID))
	return nil
}

// Discard drops a pending selection, used when the caller pushes it itself.
func (s *ServicesSyncer) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.dirty = false
}

func (s *ServicesSyncer) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

func (s *ServicesSyncer) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}
