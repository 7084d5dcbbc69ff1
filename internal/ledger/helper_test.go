package ledger

import (
	"fmt"
	"testing"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/cleared-dev/moneytrack/internal/currency"
	"github.com/cleared-dev/moneytrack/internal/kv"
	"github.com/cleared-dev/moneytrack/internal/model"
)

func init() {
	logx.Disable()
}

// testNow is a Sunday.
var testNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func sequentialIDs() func(string) string {
	n := 0
	return func(prefix string) string {
		n++
		return fmt.Sprintf("%s_%d", prefix, n)
	}
}

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	sub := kv.NewSubstrate(kv.NewMemory(), kv.FallbackToDefault)
	base := []Option{
		WithClock(func() time.Time { return testNow }),
		WithIDs(sequentialIDs()),
		WithRateFallback(currency.FallbackOne),
	}
	return New(sub, append(base, opts...)...)
}

func thbAccount(name string, balance float64) model.Account {
	return model.Account{
		BankName: "Kasikorn Bank",
		Nickname: name,
		Type:     model.AccountTypeSavings,
		Balance:  balance,
		Currency: model.CurrencyTHB,
		IsActive: true,
		Country:  model.CountryThailand,
	}
}

func juneBudget(food float64) model.Budget {
	var cats model.Categories
	_ = cats.Set(model.CategoryFood, model.BudgetCategory{Allocated: food})
	return model.Budget{
		Month:        "2025-06",
		TotalBudget:  10000,
		Categories:   cats,
		WeeklyAlerts: true,
	}
}

func countDefaults(accounts []model.Account) int {
	n := 0
	for _, a := range accounts {
		if a.IsDefault && a.IsActive {
			n++
		}
	}
	return n
}
