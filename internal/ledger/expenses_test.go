package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/moneytrack/internal/model"
)

func food(accountID, date string, amount float64) model.Expense {
	return model.Expense{
		Amount:        amount,
		Category:      model.CategoryFood,
		Description:   "lunch",
		Date:          date,
		AccountID:     accountID,
		PaymentMethod: model.PaymentDebitCard,
	}
}

func TestAddExpense_UpdatesBudgetAndBalance(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	acct := s.AddAccount(ctx, thbAccount("Main", 1000))
	s.AddBudget(ctx, juneBudget(1000))

	e := s.AddExpense(ctx, food(acct.ID, "2025-06-15", 200))
	assert.NotEmpty(t, e.ID)

	budget, _ := s.CurrentBudget(ctx)
	assert.Equal(t, 200.0, budget.Categories.Food.Spent)
	got, _ := s.Account(ctx, acct.ID)
	assert.Equal(t, 800.0, got.Balance)
	assert.Equal(t, testNow, got.LastUpdated)

	require.True(t, s.DeleteExpense(ctx, e.ID))
	budget, _ = s.CurrentBudget(ctx)
	assert.Equal(t, 0.0, budget.Categories.Food.Spent)
	got, _ = s.Account(ctx, acct.ID)
	assert.Equal(t, 1000.0, got.Balance)
	assert.Empty(t, s.Expenses(ctx))
}

func TestAddExpense_OutsideCurrentMonthSkipsBudget(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	acct := s.AddAccount(ctx, thbAccount("Main", 1000))
	s.AddBudget(ctx, juneBudget(1000))

	s.AddExpense(ctx, food(acct.ID, "2025-05-31", 200))

	budget, _ := s.CurrentBudget(ctx)
	assert.Equal(t, 0.0, budget.Categories.Food.Spent)
	got, _ := s.Account(ctx, acct.ID)
	assert.Equal(t, 800.0, got.Balance)
}

func TestAddExpense_UnknownCategoryCountsAsOthers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	acct := s.AddAccount(ctx, thbAccount("Main", 1000))
	s.AddBudget(ctx, juneBudget(1000))

	e := s.AddExpense(ctx, model.Expense{Amount: 75, Category: "pets", Date: "2025-06-10", AccountID: acct.ID})

	budget, _ := s.CurrentBudget(ctx)
	assert.Equal(t, 75.0, budget.Categories.Others.Spent)
	assert.Equal(t, s.GenerateMonthlyRecord(ctx, "2025-06").CategoryBreakdown.Others, budget.Categories.Others.Spent)

	require.True(t, s.DeleteExpense(ctx, e.ID))
	budget, _ = s.CurrentBudget(ctx)
	assert.Equal(t, 0.0, budget.Categories.Others.Spent)
}

func TestAddExpense_ConcurrentCallsKeepEveryWrite(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	acct := s.AddAccount(ctx, thbAccount("Main", 1000))
	s.AddBudget(ctx, juneBudget(1000))

	const n = 40
	var wg sync.WaitGroup
	for j := 0; j < n; j++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddExpense(ctx, food(acct.ID, "2025-06-15", 5))
		}()
	}
	wg.Wait()

	assert.Len(t, s.Expenses(ctx), n)
	got, _ := s.Account(ctx, acct.ID)
	assert.Equal(t, 800.0, got.Balance)
	budget, _ := s.CurrentBudget(ctx)
	assert.Equal(t, 200.0, budget.Categories.Food.Spent)
}

func TestAddExpense_CreditAccountGoesMoreNegative(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	card := thbAccount("Card", -500)
	card.Type = model.AccountTypeCredit
	card = s.AddAccount(ctx, card)

	s.AddExpense(ctx, food(card.ID, "2025-06-01", 250))

	got, _ := s.Account(ctx, card.ID)
	assert.Equal(t, -750.0, got.Balance)
}

func TestAddExpense_UnknownAccountStillRecorded(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	s.AddBudget(ctx, juneBudget(1000))

	s.AddExpense(ctx, food("missing", "2025-06-02", 50))

	assert.Len(t, s.Expenses(ctx), 1)
	assert.Empty(t, s.Accounts(ctx))
	budget, _ := s.CurrentBudget(ctx)
	assert.Equal(t, 50.0, budget.Categories.Food.Spent)
}

func TestDeleteExpense_UnknownIsNoop(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	acct := s.AddAccount(ctx, thbAccount("Main", 1000))
	s.AddExpense(ctx, food(acct.ID, "2025-06-02", 50))

	assert.False(t, s.DeleteExpense(ctx, "nope"))
	assert.Len(t, s.Expenses(ctx), 1)
	got, _ := s.Account(ctx, acct.ID)
	assert.Equal(t, 950.0, got.Balance)
}

func TestExpenseInverseLaw(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	acct := s.AddAccount(ctx, thbAccount("Main", 1234.5))
	budget := juneBudget(1000)
	_ = budget.Categories.Set(model.CategoryBills, model.BudgetCategory{Allocated: 300, Spent: 120})
	s.AddBudget(ctx, budget)

	cases := []model.Expense{
		food(acct.ID, "2025-06-03", 99.25),
		{Amount: 120, Category: model.CategoryBills, Date: "2025-06-30", AccountID: acct.ID},
		{Amount: 7, Category: model.CategoryOthers, Date: "2024-12-01", AccountID: acct.ID},
		{Amount: 0, Category: model.CategoryTransport, Date: "2025-06-10", AccountID: acct.ID},
	}
	for _, e := range cases {
		beforeAcct, _ := s.Account(ctx, acct.ID)
		beforeBudget, _ := s.CurrentBudget(ctx)

		added := s.AddExpense(ctx, e)
		require.True(t, s.DeleteExpense(ctx, added.ID))

		afterAcct, _ := s.Account(ctx, acct.ID)
		afterBudget, _ := s.CurrentBudget(ctx)
		assert.Equal(t, beforeAcct.Balance, afterAcct.Balance, e.Date)
		assert.Equal(t, beforeBudget.Categories, afterBudget.Categories, e.Date)
	}
}

func TestExpensesForWeek(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	for _, d := range []string{"2025-06-08", "2025-06-09", "2025-06-12", "2025-06-15", "2025-06-16", "not a date"} {
		s.AddExpense(ctx, food("x", d, 10))
	}

	week := s.ExpensesForWeek(ctx, "2025-06-09")
	var dates []string
	for _, e := range week {
		dates = append(dates, e.Date)
	}
	assert.Equal(t, []string{"2025-06-09", "2025-06-12", "2025-06-15"}, dates)
	assert.Nil(t, s.ExpensesForWeek(ctx, "garbage"))
	assert.Equal(t, 30.0, s.WeeklySpent(ctx))
}

func TestExpensesForMonthAndRecent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	for _, d := range []string{"2025-05-30", "2025-06-02", "2025-06-20", "2025-06-11"} {
		s.AddExpense(ctx, food("x", d, 1))
	}

	assert.Len(t, s.ExpensesForMonth(ctx, "2025-06"), 3)
	assert.Empty(t, s.ExpensesForMonth(ctx, "2025-07"))

	recent := s.RecentExpenses(ctx, 2)
	require.Len(t, recent, 2)
	assert.Equal(t, "2025-06-20", recent[0].Date)
	assert.Equal(t, "2025-06-11", recent[1].Date)
	assert.Len(t, s.RecentExpenses(ctx, 10), 4)
}
