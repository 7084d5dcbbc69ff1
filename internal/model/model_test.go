package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesGetSet(t *testing.T) {
	var c Categories
	for i, cat := range ExpenseCategories {
		require.NoError(t, c.Set(cat, BudgetCategory{Allocated: float64(i + 1), Spent: float64(i)}))
	}
	for i, cat := range ExpenseCategories {
		got := c.Get(cat)
		assert.Equal(t, float64(i+1), got.Allocated, "allocated for %s", cat)
		assert.Equal(t, float64(i), got.Spent, "spent for %s", cat)
	}

	assert.Error(t, c.Set("groceries", BudgetCategory{}))
	assert.Error(t, c.AddSpent("groceries", 1))
	assert.Equal(t, BudgetCategory{}, c.Get("groceries"))
}

func TestBudgetTotals(t *testing.T) {
	b := Budget{TotalBudget: 1000}
	require.NoError(t, b.Categories.Set(CategoryFood, BudgetCategory{Allocated: 600, Spent: 700}))
	require.NoError(t, b.Categories.Set(CategoryBills, BudgetCategory{Allocated: 400, Spent: 100}))

	assert.Equal(t, 800.0, b.TotalSpent())
	assert.Equal(t, 1000.0, b.TotalAllocated())
	assert.Equal(t, 200.0, b.Remaining())
}

func TestExpenseInMonth(t *testing.T) {
	tests := []struct {
		date  string
		month string
		want  bool
	}{
		{"2025-06-15", "2025-06", true},
		{"2025-06-30T23:59:00.000Z", "2025-06", true},
		{"2025-07-01", "2025-06", false},
		{"2025-06-15", "", false},
	}
	for _, tt := range tests {
		e := Expense{Date: tt.date}
		assert.Equal(t, tt.want, e.InMonth(tt.month), "InMonth(%q, %q)", tt.date, tt.month)
	}
}

func TestAccountPatchApply(t *testing.T) {
	a := Account{ID: "a1", Nickname: "Main", Balance: 100, IsActive: true}
	balance := 250.0
	def := true
	got := AccountPatch{Balance: &balance, IsDefault: &def}.Apply(a)

	assert.Equal(t, "Main", got.Nickname)
	assert.Equal(t, 250.0, got.Balance)
	assert.True(t, got.IsDefault)
	assert.True(t, got.IsActive)
	assert.True(t, AccountPatch{IsDefault: &def}.SetsDefault())
	assert.False(t, AccountPatch{}.SetsDefault())
}

func TestAccountCurrencyDefaultsToTHB(t *testing.T) {
	assert.Equal(t, CurrencyTHB, Account{}.AccountCurrency())
	assert.Equal(t, CurrencyUSDT, Account{Currency: CurrencyUSDT}.AccountCurrency())
}

func TestAccountJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(Account{ID: "a1", BankName: "KBZ Bank", Nickname: "Salary", Type: AccountTypeSavings, IsDefault: true})
	require.NoError(t, err)
	s := string(data)
	for _, field := range []string{`"bankName":"KBZ Bank"`, `"accountNickname":"Salary"`, `"accountType":"savings"`, `"isDefault":true`} {
		assert.Contains(t, s, field)
	}
}

func TestCategoryBreakdownSum(t *testing.T) {
	var b CategoryBreakdown
	b.Add(CategoryFood, 10)
	b.Add(CategoryFood, 5)
	b.Add(CategoryOthers, 2.5)
	b.Add("unknown", 100)

	assert.Equal(t, 15.0, b.Get(CategoryFood))
	assert.Equal(t, 17.5, b.Sum())
}

func TestDefaultExchangeSettings(t *testing.T) {
	s := DefaultExchangeSettings(testNow)
	assert.Len(t, s.Rates, 6)
	assert.Equal(t, 30.5, s.Rates[RateKey(CurrencyTHB, CurrencyUSDT)])
	assert.InDelta(t, 1/0.85, s.Rates["MMK_THB"], 1e-9)
	assert.False(t, s.AutoUpdate)
}

func TestLookupBank(t *testing.T) {
	b, ok := LookupBank("kbz")
	require.True(t, ok)
	assert.Equal(t, "KBZ Bank", b.Name)
	assert.Equal(t, CountryMyanmar, b.Country)

	_, ok = LookupBank("Nope Bank")
	assert.False(t, ok)

	assert.Len(t, BanksIn(CountryThailand), 5)
	assert.Len(t, BanksIn(CountryMyanmar), 7)
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, CategoryHealthcare.Valid())
	assert.False(t, Category("rent").Valid())
	assert.True(t, AccountTypeCredit.Valid())
	assert.False(t, AccountType("loan").Valid())
	assert.True(t, PaymentCash.Valid())
	assert.False(t, PaymentMethod("cheque").Valid())
	assert.True(t, IncomeBonus.Valid())
	assert.True(t, CurrencyMMK.Valid())
	assert.False(t, Currency("EUR").Valid())
}

func TestWithBankDefaults(t *testing.T) {
	a := Account{BankName: "Binance", Color: "#000000"}.WithBankDefaults()
	assert.Equal(t, "#000000", a.Color)
	assert.Equal(t, "binance", a.Logo)
	assert.Equal(t, CountryGlobal, a.Country)

	unknown := Account{BankName: "Local Credit Union"}.WithBankDefaults()
	assert.Empty(t, unknown.Logo)
}
