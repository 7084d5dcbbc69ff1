package ledger

import (
	"context"

	"github.com/cleared-dev/moneytrack/internal/kv"
	"github.com/cleared-dev/moneytrack/internal/model"
)

// Budgets returns every stored budget.
func (s *Store) Budgets(ctx context.Context) []model.Budget {
	return kv.Read(ctx, s.sub, kv.KeyBudgets, []model.Budget{})
}

// SetBudgets replaces the whole budget list.
func (s *Store) SetBudgets(ctx context.Context, budgets []model.Budget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setBudgets(ctx, budgets)
}

func (s *Store) setBudgets(ctx context.Context, budgets []model.Budget) {
	kv.Write(ctx, s.sub, kv.KeyBudgets, budgets)
}

// AddBudget stores b as the budget for its month, replacing any existing
// one wholesale. Spent totals are taken from b as given.
func (s *Store) AddBudget(ctx context.Context, b model.Budget) model.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addBudget(ctx, b)
}

func (s *Store) addBudget(ctx context.Context, b model.Budget) model.Budget {
	if b.ID == "" {
		b.ID = s.newID("budget")
	}
	budgets := s.Budgets(ctx)
	kept := budgets[:0]
	for _, existing := range budgets {
		if existing.Month != b.Month {
			kept = append(kept, existing)
		}
	}
	kept = append(kept, b)
	s.setBudgets(ctx, kept)
	return b
}

// BudgetFor returns the budget for month.
func (s *Store) BudgetFor(ctx context.Context, month string) (model.Budget, bool) {
	for _, b := range s.Budgets(ctx) {
		if b.Month == month {
			return b, true
		}
	}
	return model.Budget{}, false
}

// CurrentBudget returns the budget for the store's current month.
func (s *Store) CurrentBudget(ctx context.Context) (model.Budget, bool) {
	return s.BudgetFor(ctx, s.CurrentMonth())
}

// SaveBudget stores b for its month like AddBudget, but an existing budget
// for that month keeps its ID, LastAlertDate and any spent total that b
// leaves at zero.
func (s *Store) SaveBudget(ctx context.Context, b model.Budget) model.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.BudgetFor(ctx, b.Month)
	if !ok {
		return s.addBudget(ctx, b)
	}
	if b.ID == "" {
		b.ID = existing.ID
	}
	if b.LastAlertDate == "" {
		b.LastAlertDate = existing.LastAlertDate
	}
	for _, cat := range model.ExpenseCategories {
		cur := b.Categories.Get(cat)
		if cur.Spent == 0 {
			cur.Spent = existing.Categories.Get(cat).Spent
			_ = b.Categories.Set(cat, cur)
		}
	}
	return s.addBudget(ctx, b)
}
