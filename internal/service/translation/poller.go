// Package translation runs the background poller that fills the back of
// pending cards with a model translation.
package translation

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/heartmarshall/sentence-miner/internal/domain"
)

type cardStore interface {
	ListPending(ctx context.Context, limit int) ([]domain.AnkiCard, error)
	FillBack(ctx context.Context, id int64, back string) (bool, error)
}

type translator interface {
	TranslateBatch(ctx context.Context, items []domain.TranslationItem) ([]domain.TranslationResult, error)
}

type notifier interface {
	NotifyCardUpdated(cardID int64)
}

// Config controls the poller's pacing.
type Config struct {
	BatchSize    int
	PollInterval time.Duration
	RetryBackoff time.Duration
	CardDelay    time.Duration
	DevFallback  bool
}

// Poller fetches pending cards in batches, translates them and writes the
// result to the card's back. At most one loop runs per Poller.
type Poller struct {
	cards      cardStore
	translator translator
	bus        notifier
	cfg        Config
	log        *slog.Logger

	running atomic.Bool

	mu     sync.Mutex
	stopCh chan struct{}
	done   chan struct{}
}

// NewPoller creates a stopped poller.
func NewPoller(log *slog.Logger, cards cardStore, tr translator, bus notifier, cfg Config) *Poller {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 5
	}
	return &Poller{
		cards:      cards,
		translator: tr,
		bus:        bus,
		cfg:        cfg,
		log:        log.With("service", "translation"),
	}
}

// Start launches the loop in a goroutine. It returns false without doing
// anything when a loop is already running. The loop ends when ctx is done
// or Stop is called.
func (p *Poller) Start(ctx context.Context) bool {
	if !p.running.CompareAndSwap(false, true) {
		return false
	}

	stopCh := make(chan struct{})
	done := make(chan struct{})

	p.mu.Lock()
	p.stopCh = stopCh
	p.done = done
	p.mu.Unlock()

	go p.loop(ctx, stopCh, done)
	p.log.InfoContext(ctx, "translation poller started",
		slog.Int("batch_size", p.cfg.BatchSize),
		slog.Duration("poll_interval", p.cfg.PollInterval),
		slog.Bool("dev_fallback", p.cfg.DevFallback),
	)
	return true
}

// Stop asks the loop to end. A cycle in progress completes first.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopCh == nil {
		return
	}
	select {
	case <-p.stopCh:
	default:
		close(p.stopCh)
	}
}

// Wait blocks until the current loop, if any, has exited.
func (p *Poller) Wait() {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()

	if done != nil {
		<-done
	}
}

// IsRunning reports whether a loop is active.
func (p *Poller) IsRunning() bool {
	return p.running.Load()
}

func (p *Poller) loop(ctx context.Context, stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer p.running.Store(false)

	limiter := p.newLimiter()

	for {
		select {
		case <-ctx.Done():
			p.log.Info("translation poller stopped", slog.String("reason", "context done"))
			return
		case <-stopCh:
			p.log.Info("translation poller stopped", slog.String("reason", "stop requested"))
			return
		default:
		}

		res, err := p.safeCycle(ctx, limiter)
		if err != nil {
			p.log.Warn("translation cycle failed", slog.String("error", err.Error()))
		}
		if pause := p.pauseAfter(res, err); pause > 0 {
			sleep(ctx, stopCh, pause)
		}
	}
}

// pauseAfter returns how long the loop sleeps before the next cycle. A
// cycle that wrote no card waits like an idle one; the same oldest batch
// would otherwise go straight back to the translator.
func (p *Poller) pauseAfter(res CycleResult, err error) time.Duration {
	switch {
	case err != nil:
		return p.cfg.RetryBackoff
	case res.Applied == 0:
		return p.cfg.PollInterval
	}
	return 0
}

// safeCycle runs one cycle and turns a panic into an error so the loop
// keeps going.
func (p *Poller) safeCycle(ctx context.Context, limiter *rate.Limiter) (res CycleResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("panic in translation cycle",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
			err = fmt.Errorf("panic in translation cycle: %v", r)
		}
	}()
	return p.runCycle(ctx, limiter)
}

func (p *Poller) newLimiter() *rate.Limiter {
	if p.cfg.CardDelay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(p.cfg.CardDelay), 1)
}

func sleep(ctx context.Context, stopCh <-chan struct{}, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-stopCh:
	case <-t.C:
	}
}
