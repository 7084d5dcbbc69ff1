package report

import (
	"context"

	"github.com/cleared-dev/moneytrack/internal/ledger"
	"github.com/cleared-dev/moneytrack/internal/model"
)

const recentExpenseCount = 5

// Dashboard is the at-a-glance summary of the ledger.
type Dashboard struct {
	Month          string          `json:"month"`
	Currency       model.Currency  `json:"currency"`
	TotalBalance   float64         `json:"totalBalance"`
	TotalDebt      float64         `json:"totalDebt"`
	NetWorth       float64         `json:"netWorth"`
	ActiveAccounts int             `json:"activeAccounts"`
	Budget         *Progress       `json:"budget,omitempty"`
	WeeklySpent    float64         `json:"weeklySpent"`
	WeeklyCheckDue bool            `json:"weeklyCheckDue"`
	RecentExpenses []model.Expense `json:"recentExpenses"`
}

// BuildDashboard summarises the ledger, converting balances into ref.
func BuildDashboard(ctx context.Context, store *ledger.Store, ref model.Currency) Dashboard {
	accounts := store.Accounts(ctx)
	conv := store.Converter(ctx)

	d := Dashboard{
		Month:          store.CurrentMonth(),
		Currency:       ref,
		TotalBalance:   TotalBalance(accounts, conv, ref),
		TotalDebt:      TotalDebt(accounts, conv, ref),
		WeeklySpent:    store.WeeklySpent(ctx),
		WeeklyCheckDue: store.WeeklyCheckDue(ctx),
		RecentExpenses: store.RecentExpenses(ctx, recentExpenseCount),
	}
	d.NetWorth = d.TotalBalance - d.TotalDebt
	for _, a := range accounts {
		if a.IsActive {
			d.ActiveAccounts++
		}
	}
	if b, ok := store.CurrentBudget(ctx); ok {
		p := BudgetProgress(b)
		d.Budget = &p
	}
	return d
}
