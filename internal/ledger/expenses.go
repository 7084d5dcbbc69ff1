package ledger

import (
	"context"
	"slices"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/cleared-dev/moneytrack/internal/id"
	"github.com/cleared-dev/moneytrack/internal/kv"
	"github.com/cleared-dev/moneytrack/internal/model"
)

// Expenses returns every stored expense.
func (s *Store) Expenses(ctx context.Context) []model.Expense {
	return kv.Read(ctx, s.sub, kv.KeyExpenses, []model.Expense{})
}

// SetExpenses replaces the whole expense list.
func (s *Store) SetExpenses(ctx context.Context, expenses []model.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setExpenses(ctx, expenses)
}

func (s *Store) setExpenses(ctx context.Context, expenses []model.Expense) {
	kv.Write(ctx, s.sub, kv.KeyExpenses, expenses)
}

// AddExpense records e, then debits its account and, when e falls in the
// current budget's month, adds it to that category's spent total.
func (s *Store) AddExpense(ctx context.Context, e model.Expense) model.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = s.newID("expense")
	}
	expenses := s.Expenses(ctx)
	expenses = append(expenses, e)
	s.setExpenses(ctx, expenses)

	s.applyExpense(ctx, e, 1)
	return e
}

// DeleteExpense removes the expense with id and reverses its effects on the
// account balance and the current budget. Unknown ids are a no-op.
func (s *Store) DeleteExpense(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	expenses := s.Expenses(ctx)
	idx := slices.IndexFunc(expenses, func(e model.Expense) bool { return e.ID == id })
	if idx == -1 {
		return false
	}
	e := expenses[idx]
	s.setExpenses(ctx, slices.Delete(expenses, idx, idx+1))

	s.applyExpense(ctx, e, -1)
	return true
}

// applyExpense propagates an expense's derived effects: sign is +1 when the
// expense is added and -1 when it is removed. The account write and the
// budget write are independent; neither is rolled back if the other fails.
// A category outside the closed set counts toward others, as it does in
// monthly records.
func (s *Store) applyExpense(ctx context.Context, e model.Expense, sign float64) {
	s.adjustBalance(ctx, e.AccountID, -sign*e.Amount)

	budget, ok := s.CurrentBudget(ctx)
	if !ok || !e.InMonth(budget.Month) {
		return
	}
	cat := e.Category
	if !cat.Valid() {
		logx.WithContext(ctx).Infow("unknown expense category, counting as others",
			logx.Field("expense", e.ID), logx.Field("category", string(cat)))
		cat = model.CategoryOthers
	}
	if err := budget.Categories.AddSpent(cat, sign*e.Amount); err != nil {
		logx.WithContext(ctx).Errorw("skipping budget update", logx.Field("expense", e.ID), logx.Field("error", err.Error()))
		return
	}
	s.addBudget(ctx, budget)
}

// ExpensesForMonth returns the expenses dated within month (YYYY-MM).
func (s *Store) ExpensesForMonth(ctx context.Context, month string) []model.Expense {
	var result []model.Expense
	for _, e := range s.Expenses(ctx) {
		if e.InMonth(month) {
			result = append(result, e)
		}
	}
	return result
}

// ExpensesForWeek returns the expenses dated in the seven days starting at
// weekStart (YYYY-MM-DD). Expenses with unparseable dates are skipped.
func (s *Store) ExpensesForWeek(ctx context.Context, weekStart string) []model.Expense {
	start, err := id.ParseDay(weekStart)
	if err != nil {
		return nil
	}
	end := start.AddDate(0, 0, 7)

	var result []model.Expense
	for _, e := range s.Expenses(ctx) {
		d, err := id.ParseDay(e.Date)
		if err != nil {
			continue
		}
		if !d.Before(start) && d.Before(end) {
			result = append(result, e)
		}
	}
	return result
}

// RecentExpenses returns up to n expenses, newest first.
func (s *Store) RecentExpenses(ctx context.Context, n int) []model.Expense {
	expenses := s.Expenses(ctx)
	slices.SortStableFunc(expenses, func(a, b model.Expense) int {
		return strings.Compare(b.Date, a.Date)
	})
	if n >= 0 && len(expenses) > n {
		expenses = expenses[:n]
	}
	return expenses
}
