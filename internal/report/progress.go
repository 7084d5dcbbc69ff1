package report

import (
	"sort"

	"github.com/cleared-dev/moneytrack/internal/model"
)

// CategoryProgress is one budget category's standing.
type CategoryProgress struct {
	Category  model.Category `json:"category"`
	Allocated float64        `json:"allocated"`
	Spent     float64        `json:"spent"`
	Remaining float64        `json:"remaining"`
	Percent   float64        `json:"percent"`
	Over      bool           `json:"over"`
}

// Progress is a budget's standing per category and in aggregate. The
// aggregate percent is measured against the total budget.
type Progress struct {
	Month       string             `json:"month"`
	TotalBudget float64            `json:"totalBudget"`
	Allocated   float64            `json:"allocated"`
	Spent       float64            `json:"spent"`
	Remaining   float64            `json:"remaining"`
	Percent     float64            `json:"percent"`
	Over        bool               `json:"over"`
	Categories  []CategoryProgress `json:"categories"`
}

func percentOf(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

// BudgetProgress computes the standing of b. Categories are returned in
// their fixed order.
func BudgetProgress(b model.Budget) Progress {
	p := Progress{
		Month:       b.Month,
		TotalBudget: b.TotalBudget,
		Categories:  make([]CategoryProgress, 0, len(model.ExpenseCategories)),
	}
	for _, cat := range model.ExpenseCategories {
		c := b.Categories.Get(cat)
		p.Categories = append(p.Categories, CategoryProgress{
			Category:  cat,
			Allocated: c.Allocated,
			Spent:     c.Spent,
			Remaining: c.Allocated - c.Spent,
			Percent:   percentOf(c.Spent, c.Allocated),
			Over:      c.Spent > c.Allocated,
		})
		p.Allocated += c.Allocated
		p.Spent += c.Spent
	}
	p.Remaining = b.TotalBudget - p.Spent
	p.Percent = percentOf(p.Spent, b.TotalBudget)
	p.Over = p.Remaining < 0
	return p
}

// BySpent returns the categories ordered by spent, highest first.
func (p Progress) BySpent() []CategoryProgress {
	out := make([]CategoryProgress, len(p.Categories))
	copy(out, p.Categories)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Spent > out[j].Spent })
	return out
}
