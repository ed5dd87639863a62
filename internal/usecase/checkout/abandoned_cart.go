package checkout

import (
	"context"
	"errors"
	"evaluation_orders/internal/domain/entities"
	"evaluation_orders/internal/infrastructure/logger"
	"evaluation_orders/internal/usecase"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultAbandonedCartDelay = 30 * time.Minute

// ActivityKind is a browser event forwarded to the tracker.
type ActivityKind string

const (
	ActivityPointer ActivityKind = "pointer"
	ActivityKey     ActivityKind = "key"
	ActivityScroll  ActivityKind = "scroll"
	ActivityTouch   ActivityKind = "touch"
	ActivityHidden  ActivityKind = "hidden"
	ActivityVisible ActivityKind = "visible"
)

var ErrUnknownActivity = errors.New("unknown activity kind")

// NotifyFunc sends the abandoned-cart notification for one session.
type NotifyFunc func(ctx context.Context, data entities.OrderData, sessionID string) error

// AbandonedCartTracker fires at most one notification per session id after
// the user has been idle for delay.
//
// Activity and tab-hide re-arm the idle timer; tab-visible cancels it. Only
// MarkAsActive starts a new session and allows another notification.
type AbandonedCartTracker struct {
	mu        sync.Mutex
	delay     time.Duration
	afterFunc AfterFunc
	snapshot  func() entities.OrderData
	notify    NotifyFunc
	log       *zap.Logger

	timer     Timer
	gen       uint64
	sessionID string
	notified  bool
	stopped   bool
}

func NewAbandonedCartTracker(delay time.Duration, snapshot func() entities.OrderData, notify NotifyFunc, log *zap.Logger) *AbandonedCartTracker {
	if delay <= 0 {
		delay = DefaultAbandonedCartDelay
	}
	return &AbandonedCartTracker{
		delay:     delay,
		afterFunc: realAfterFunc,
		snapshot:  snapshot,
		notify:    notify,
		log:       logger.OrNop(log),
		sessionID: uuid.NewString(),
	}
}

func (t *AbandonedCartTracker) RecordActivity(kind ActivityKind) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch kind {
	case ActivityPointer, ActivityKey, ActivityScroll, ActivityTouch, ActivityHidden:
		if !t.stopped {
			t.armLocked()
		}
	case ActivityVisible:
		t.disarmLocked()
	default:
		return ErrUnknownActivity
	}
	return nil
}

// MarkAsActive starts a new session, clears the sent flag and re-arms.
func (t *AbandonedCartTracker) MarkAsActive() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.sessionID = uuid.NewString()
	t.notified = false
	t.armLocked()
}

// StopTracking disarms the timer for good.
func (t *AbandonedCartTracker) StopTracking() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	t.disarmLocked()
}

func (t *AbandonedCartTracker) SessionID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessionID
}

func (t *AbandonedCartTracker) Notified() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.notified
}

func (t *AbandonedCartTracker) armLocked() {
	t.disarmLocked()
	gen := t.gen
	t.timer = t.afterFunc(t.delay, func() { t.expire(gen) })
}

// disarmLocked also bumps the generation so a callback already in flight
// becomes stale.
func (t *AbandonedCartTracker) disarmLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.gen++
}

func (t *AbandonedCartTracker) expire(gen uint64) {
	t.mu.Lock()
	if gen != t.gen || t.stopped || t.notified {
		t.mu.Unlock()
		return
	}
	t.timer = nil
	data := t.snapshot()
	if !usecase.AbandonedCartEligible(data) {
		t.mu.Unlock()
		return
	}
	t.notified = true
	sessionID := t.sessionID
	t.mu.Unlock()

	if err := t.notify(context.Background(), data, sessionID); err != nil {
		t.log.Warn("[checkout][abandoned-cart] notification failed", zap.String("session_id", sessionID), zap.Error(err))
		return
	}
	t.log.Info("[checkout][abandoned-cart] notification sent", zap.String("session_id", sessionID))
}
