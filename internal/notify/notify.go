// Package notify delivers the weekly check-in reminder.
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/cleared-dev/moneytrack/internal/currency"
	"github.com/cleared-dev/moneytrack/internal/id"
	"github.com/cleared-dev/moneytrack/internal/ledger"
	"github.com/cleared-dev/moneytrack/internal/model"
)

// Title heads every weekly reminder.
const Title = "💰 Weekly Budget Check-in"

// Notifier delivers a message to the user.
type Notifier interface {
	Notify(ctx context.Context, msg string) error
}

// WeeklyMessage builds the reminder text for budget.
func WeeklyMessage(budget model.Budget, weeklySpent float64) string {
	return fmt.Sprintf("%s\nTime to update your account balances! Budget remaining: %s\nSpent this week: %s",
		Title,
		currency.FormatTHB(budget.Remaining(), true),
		currency.FormatTHB(weeklySpent, true))
}

// Writer prints messages to an io.Writer.
type Writer struct {
	W io.Writer
}

// Notify writes msg followed by a newline.
func (w Writer) Notify(_ context.Context, msg string) error {
	if _, err := fmt.Fprintln(w.W, msg); err != nil {
		return fmt.Errorf("writing notification: %w", err)
	}
	return nil
}

// Watcher periodically checks whether a weekly check-in is due and sends
// one reminder per week.
type Watcher struct {
	store    *ledger.Store
	notifier Notifier
	interval time.Duration

	mu       sync.Mutex
	lastWeek string
}

// NewWatcher creates a Watcher that checks every interval.
func NewWatcher(store *ledger.Store, notifier Notifier, interval time.Duration) *Watcher {
	return &Watcher{store: store, notifier: notifier, interval: interval}
}

// Check sends a reminder if one is due and none was sent this week. It
// reports whether a reminder was sent.
func (w *Watcher) Check(ctx context.Context) (bool, error) {
	if !w.store.WeeklyCheckDue(ctx) {
		return false, nil
	}
	week := id.WeekStart(w.store.Now())

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.lastWeek == week {
		return false, nil
	}

	budget, ok := w.store.CurrentBudget(ctx)
	if !ok {
		return false, nil
	}
	if err := w.notifier.Notify(ctx, WeeklyMessage(budget, w.store.WeeklySpent(ctx))); err != nil {
		return false, fmt.Errorf("sending weekly reminder: %w", err)
	}
	w.lastWeek = week
	return true, nil
}

// Run checks immediately and then on every tick until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if sent, err := w.Check(ctx); err != nil {
			logx.WithContext(ctx).Errorw("weekly reminder failed", logx.Field("error", err.Error()))
		} else if sent {
			logx.WithContext(ctx).Infow("weekly reminder sent")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
