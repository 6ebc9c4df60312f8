// Package notify is an in-process broadcast bus used to wake up readers
// waiting for a card's back to be filled. It does not span processes.
package notify

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"
)

// Outcome tells why a wait returned.
type Outcome int

const (
	Notified Outcome = iota
	TimedOut
	Canceled
)

func (o Outcome) String() string {
	switch o {
	case Notified:
		return "notified"
	case TimedOut:
		return "timed_out"
	default:
		return "canceled"
	}
}

type waiter struct {
	ch chan struct{}
}

// Bus delivers fire-and-forget notifications to every waiter registered
// for a key at the time of the notification.
type Bus struct {
	mu      sync.Mutex
	waiters map[string]map[*waiter]struct{}
	log     *slog.Logger
}

// NewBus creates an empty Bus.
func NewBus(log *slog.Logger) *Bus {
	return &Bus{
		waiters: make(map[string]map[*waiter]struct{}),
		log:     log.With("component", "notify"),
	}
}

// CardUpdatedKey is the key used for card back updates.
func CardUpdatedKey(cardID int64) string {
	return "anki_card_updated:" + strconv.FormatInt(cardID, 10)
}

// NotifyCardUpdated wakes every waiter of the card. It never blocks.
func (b *Bus) NotifyCardUpdated(cardID int64) {
	b.Notify(CardUpdatedKey(cardID))
}

// AwaitCardUpdated blocks until the card is notified, timeout elapses or ctx
// is done. It never fails; the outcome only tells which one happened.
func (b *Bus) AwaitCardUpdated(ctx context.Context, cardID int64, timeout time.Duration) Outcome {
	return b.Wait(ctx, CardUpdatedKey(cardID), timeout)
}

// Notify wakes every waiter currently registered for key. With no waiters
// it does nothing.
func (b *Bus) Notify(key string) {
	b.mu.Lock()
	set := b.waiters[key]
	delete(b.waiters, key)
	b.mu.Unlock()

	for w := range set {
		select {
		case w.ch <- struct{}{}:
		default:
		}
	}
	if len(set) > 0 {
		b.log.Debug("notified waiters", slog.String("key", key), slog.Int("count", len(set)))
	}
}

// Wait registers a waiter for key and blocks until it is notified, timeout
// elapses (timeout <= 0 means no timeout) or ctx is done. The registration
// is removed on every return path.
func (b *Bus) Wait(ctx context.Context, key string, timeout time.Duration) Outcome {
	w := &waiter{ch: make(chan struct{}, 1)}

	b.mu.Lock()
	set, ok := b.waiters[key]
	if !ok {
		set = make(map[*waiter]struct{})
		b.waiters[key] = set
	}
	set[w] = struct{}{}
	b.mu.Unlock()

	defer b.remove(key, w)

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case <-w.ch:
		return Notified
	case <-expired:
		return TimedOut
	case <-ctx.Done():
		return Canceled
	}
}

func (b *Bus) remove(key string, w *waiter) {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.waiters[key]
	if !ok {
		return
	}
	delete(set, w)
	if len(set) == 0 {
		delete(b.waiters, key)
	}
}

// Waiters returns the number of waiters registered for key.
func (b *Bus) Waiters(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.waiters[key])
}
