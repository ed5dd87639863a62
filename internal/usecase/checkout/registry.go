package checkout

import (
	"context"
	"errors"
	"evaluation_orders/internal/domain/entities"
	"evaluation_orders/internal/infrastructure/logger"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultCompletedSessionTTL = 5 * time.Minute
	DefaultSweepInterval       = time.Minute
)

var ErrSessionNotFound = errors.New("checkout session not found")

// Registry owns the live checkouts of the process. A background sweep drops
// paid checkouts after a grace period and checkouts whose client went away.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Controller
	deps     Deps
	loader   *ResumeLoader
	log      *zap.Logger

	idleTTL      time.Duration
	completedTTL time.Duration
	now          func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
	swept    sync.WaitGroup
}

func NewRegistry(deps Deps) *Registry {
	var publicURL func(string) string
	if deps.Storage != nil {
		publicURL = deps.Storage.PublicURL
	}
	r := &Registry{
		sessions:     map[string]*Controller{},
		deps:         deps,
		loader:       NewResumeLoader(deps.Backend, publicURL, deps.Log),
		log:          logger.OrNop(deps.Log),
		idleTTL:      deps.Config.SessionIdleTTL,
		completedTTL: deps.Config.CompletedSessionTTL,
		now:          time.Now,
		stop:         make(chan struct{}),
	}
	if r.idleTTL <= 0 {
		delay := deps.Config.AbandonedCartDelay
		if delay <= 0 {
			delay = DefaultAbandonedCartDelay
		}
		r.idleTTL = 2 * delay
	}
	if r.completedTTL <= 0 {
		r.completedTTL = DefaultCompletedSessionTTL
	}
	interval := deps.Config.SweepInterval
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	r.swept.Add(1)
	go r.sweepEvery(interval)
	return r
}

// Create mounts a checkout, resuming or pre-filling it from params.
func (r *Registry) Create(ctx context.Context, params url.Values) (*Controller, ResumeResult) {
	res := r.loader.Load(ctx, params, entities.NewOrderData())
	c := NewController(uuid.NewString(), r.deps, res.Data, res.OrderID)
	c.now = r.now
	c.touch()
	c.Seed(res.Step)

	r.mu.Lock()
	r.sessions[c.ID()] = c
	r.mu.Unlock()
	r.deps.Metrics.SessionOpened()
	c.log.Info("[checkout][registry] session opened",
		zap.String("order_id", res.OrderID), zap.Int("step", int(res.Step)), zap.Bool("reset", res.Reset))
	return c, res
}

// Get returns a live checkout and counts the lookup as client traffic.
func (r *Registry) Get(id string) (*Controller, error) {
	r.mu.RLock()
	c, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	c.touch()
	return c, nil
}

// Delete unmounts a checkout.
func (r *Registry) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	c, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	c.Close(ctx)
	r.deps.Metrics.SessionClosed()
	return nil
}

// Sweep unmounts the checkouts that expired at the registry clock and
// returns how many it dropped.
func (r *Registry) Sweep(ctx context.Context) int {
	now := r.now()
	var expired []*Controller
	r.mu.Lock()
	for id, c := range r.sessions {
		if c.expired(now, r.idleTTL, r.completedTTL) {
			delete(r.sessions, id)
			expired = append(expired, c)
		}
	}
	r.mu.Unlock()

	for _, c := range expired {
		c.Close(ctx)
		r.deps.Metrics.SessionClosed()
		c.log.Info("[checkout][registry] session expired", zap.Bool("completed", c.isCompleted()))
	}
	return len(expired)
}

func (r *Registry) sweepEvery(interval time.Duration) {
	defer r.swept.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			if n := r.Sweep(context.Background()); n > 0 {
				r.log.Info("[checkout][registry] sweep", zap.Int("expired", n), zap.Int("live", r.Len()))
			}
		}
	}
}

// CloseAll stops the sweep and unmounts every checkout, used at shutdown.
func (r *Registry) CloseAll(ctx context.Context) {
	r.stopOnce.Do(func() { close(r.stop) })
	r.swept.Wait()

	r.mu.Lock()
	sessions := r.sessions
	r.sessions = map[string]*Controller{}
	r.mu.Unlock()
	for _, c := range sessions {
		c.Close(ctx)
		c.Uploads().Wait()
		r.deps.Metrics.SessionClosed()
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
