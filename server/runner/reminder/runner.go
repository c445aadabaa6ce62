// Package reminder sweeps for events that are about to start and hands them
// to a notifier. The chat transport behind the notifier is injected; the
// runner only decides which events are due.
package reminder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dayfold/dayfold/store"
)

// Notifier delivers a reminder for one event to its owner.
type Notifier interface {
	Notify(ctx context.Context, event *store.Event) error
}

// EventLister is the slice of the store the runner needs.
type EventLister interface {
	ListEvents(ctx context.Context, find *store.FindEvent) ([]*store.Event, error)
}

// Runner periodically looks for events starting within the lookahead window
// and notifies once per event. Windows are half-open [lastUpper, now+window)
// so consecutive sweeps never fire twice for the same event.
type Runner struct {
	store    EventLister
	notifier Notifier
	schedule string
	window   time.Duration

	cron *cron.Cron
	now  func() time.Time

	mu        sync.Mutex
	lastUpper int64
}

// NewRunner creates a reminder runner. schedule is a cron expression
// (robfig syntax, "@every 1m" style descriptors included) and window is how
// far ahead of an event's start the reminder fires.
func NewRunner(lister EventLister, notifier Notifier, schedule string, window time.Duration) *Runner {
	return &Runner{
		store:    lister,
		notifier: notifier,
		schedule: schedule,
		window:   window,
		now:      time.Now,
	}
}

// Start schedules the sweep and returns. Events already inside the window at
// startup are swept by the first tick.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	r.lastUpper = r.now().Unix()
	r.mu.Unlock()

	c := cron.New()
	if _, err := c.AddFunc(r.schedule, func() {
		if _, err := r.Sweep(ctx); err != nil {
			slog.Error("reminder sweep failed", slog.Any("error", err))
		}
	}); err != nil {
		return err
	}
	c.Start()
	r.cron = c

	slog.Info("reminder runner started",
		slog.String("schedule", r.schedule),
		slog.Duration("window", r.window))
	return nil
}

// Stop halts the cron schedule and waits for a running sweep to finish.
func (r *Runner) Stop() {
	if r.cron == nil {
		return
	}
	<-r.cron.Stop().Done()
	slog.Info("reminder runner stopped")
}

// Sweep notifies for every event starting in [lastUpper, now+window) and
// advances the watermark. It returns the number of notifications delivered.
func (r *Runner) Sweep(ctx context.Context) (int, error) {
	upper := r.now().Add(r.window).Unix()

	r.mu.Lock()
	lower := r.lastUpper
	if upper < lower {
		upper = lower
	}
	r.lastUpper = upper
	r.mu.Unlock()

	if lower == upper {
		return 0, nil
	}

	events, err := r.store.ListEvents(ctx, &store.FindEvent{
		StartsAfter:  &lower,
		StartsBefore: &upper,
	})
	if err != nil {
		return 0, err
	}

	notified := 0
	for _, event := range events {
		if err := r.notifier.Notify(ctx, event); err != nil {
			slog.Warn("failed to deliver reminder",
				slog.String("uid", event.UID),
				slog.Int64("user", event.UserID),
				slog.Any("error", err))
			continue
		}
		notified++
	}

	if notified > 0 {
		slog.Info("reminders delivered", slog.Int("count", notified))
	}
	return notified, nil
}
