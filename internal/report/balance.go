// Package report folds ledger collections into summaries: balances, debt,
// budget progress, the dashboard and the monthly report document.
package report

import (
	"math"

	"github.com/cleared-dev/moneytrack/internal/model"
)

// Converter converts an amount between currencies.
type Converter interface {
	Convert(amount float64, from, to model.Currency) float64
}

func inReference(amount float64, a model.Account, conv Converter, ref model.Currency) float64 {
	if conv == nil {
		return amount
	}
	return conv.Convert(amount, a.AccountCurrency(), ref)
}

// TotalBalance sums the balances of active non-credit accounts. With a
// converter each balance is first converted into ref; without one,
// balances are summed as they are.
func TotalBalance(accounts []model.Account, conv Converter, ref model.Currency) float64 {
	var total float64
	for _, a := range accounts {
		if !a.IsActive || a.Type == model.AccountTypeCredit {
			continue
		}
		total += inReference(a.Balance, a, conv, ref)
	}
	return total
}

// TotalDebt is the absolute sum of negative balances on active credit
// accounts.
func TotalDebt(accounts []model.Account, conv Converter, ref model.Currency) float64 {
	var total float64
	for _, a := range accounts {
		if !a.IsActive || a.Type != model.AccountTypeCredit || a.Balance >= 0 {
			continue
		}
		total += inReference(math.Abs(a.Balance), a, conv, ref)
	}
	return total
}

// NetWorth is TotalBalance minus TotalDebt.
func NetWorth(accounts []model.Account, conv Converter, ref model.Currency) float64 {
	return TotalBalance(accounts, conv, ref) - TotalDebt(accounts, conv, ref)
}

// WeeklySpent totals expense amounts.
func WeeklySpent(expenses []model.Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}
