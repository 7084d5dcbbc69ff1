package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/cleared-dev/moneytrack/internal/id"
	"github.com/cleared-dev/moneytrack/internal/kv"
	"github.com/cleared-dev/moneytrack/internal/model"
)

const checkInterval = 7 * 24 * time.Hour

// WeeklyAlerts returns the check-in log.
func (s *Store) WeeklyAlerts(ctx context.Context) []model.WeeklyAlert {
	return kv.Read(ctx, s.sub, kv.KeyWeeklyAlerts, []model.WeeklyAlert{})
}

// SetWeeklyAlerts replaces the whole check-in log.
func (s *Store) SetWeeklyAlerts(ctx context.Context, alerts []model.WeeklyAlert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setWeeklyAlerts(ctx, alerts)
}

func (s *Store) setWeeklyAlerts(ctx context.Context, alerts []model.WeeklyAlert) {
	kv.Write(ctx, s.sub, kv.KeyWeeklyAlerts, alerts)
}

// AddWeeklyAlert appends a to the check-in log.
func (s *Store) AddWeeklyAlert(ctx context.Context, a model.WeeklyAlert) model.WeeklyAlert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addWeeklyAlert(ctx, a)
}

func (s *Store) addWeeklyAlert(ctx context.Context, a model.WeeklyAlert) model.WeeklyAlert {
	if a.ID == "" {
		a.ID = s.newID("alert")
	}
	alerts := s.WeeklyAlerts(ctx)
	alerts = append(alerts, a)
	s.setWeeklyAlerts(ctx, alerts)
	return a
}

// WeeklyCheckDue reports whether a weekly check-in should be prompted: the
// current budget has weekly alerts enabled, this week has no completed
// check-in, and the last one was at least seven days ago.
func (s *Store) WeeklyCheckDue(ctx context.Context) bool {
	now := s.Now()
	week := id.WeekStart(now)
	for _, a := range s.WeeklyAlerts(ctx) {
		if a.WeekOf == week && a.Completed {
			return false
		}
	}

	budget, ok := s.CurrentBudget(ctx)
	if !ok || !budget.WeeklyAlerts {
		return false
	}
	if budget.LastAlertDate != "" {
		last, err := id.ParseDay(budget.LastAlertDate)
		if err == nil && last.After(now.Add(-checkInterval)) {
			return false
		}
	}
	return true
}

// WeeklySpent totals the expenses dated in the current week.
func (s *Store) WeeklySpent(ctx context.Context) float64 {
	var total float64
	for _, e := range s.ExpensesForWeek(ctx, id.WeekStart(s.Now())) {
		total += e.Amount
	}
	return total
}

// CompleteWeeklyCheck applies the reconciled balances of active accounts,
// logs a completed check-in for this week and stamps the current budget's
// last alert date. Balances for unknown or inactive accounts, and balances
// equal to the stored one, are ignored.
func (s *Store) CompleteWeeklyCheck(ctx context.Context, balances map[string]float64) model.WeeklyAlert {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.Now()

	updated := []string{}
	for _, a := range s.Accounts(ctx) {
		balance, ok := balances[a.ID]
		if !ok || !a.IsActive || balance == a.Balance {
			continue
		}
		s.updateAccount(ctx, a.ID, model.AccountPatch{Balance: &balance, LastUpdated: &now})
		updated = append(updated, a.ID)
	}
	sort.Strings(updated)

	budget, hasBudget := s.CurrentBudget(ctx)
	var remaining float64
	if hasBudget {
		remaining = budget.Remaining()
	}

	alert := s.addWeeklyAlert(ctx, model.WeeklyAlert{
		WeekOf:          id.WeekStart(now),
		AlertDate:       s.timestamp(),
		BudgetRemaining: remaining,
		WeeklySpent:     s.WeeklySpent(ctx),
		AccountsUpdated: updated,
		Completed:       true,
	})

	if hasBudget {
		budget.LastAlertDate = alert.AlertDate
		s.addBudget(ctx, budget)
	}
	return alert
}
