package ledger

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/moneytrack/internal/model"
)

func fields(errs []ValidationError) []string {
	var out []string
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidateExpense(t *testing.T) {
	accounts := NewAccountIndex([]model.Account{{ID: "a1"}, {ID: "a2"}})

	tests := []struct {
		name string
		e    model.Expense
		want []string
	}{
		{"valid", model.Expense{Amount: 10, Category: model.CategoryFood, Date: "2025-06-01", AccountID: "a1"}, nil},
		{"negative amount", model.Expense{Amount: -1, Category: model.CategoryFood, Date: "2025-06-01", AccountID: "a1"}, []string{"amount"}},
		{"nan amount", model.Expense{Amount: math.NaN(), Category: model.CategoryFood, Date: "2025-06-01", AccountID: "a1"}, []string{"amount"}},
		{"bad category", model.Expense{Amount: 1, Category: "pets", Date: "2025-06-01", AccountID: "a1"}, []string{"category"}},
		{"bad payment", model.Expense{Amount: 1, Category: model.CategoryBills, Date: "2025-06-01", AccountID: "a1", PaymentMethod: "iou"}, []string{"paymentMethod"}},
		{"bad date and account", model.Expense{Amount: 1, Category: model.CategoryBills, Date: "June", AccountID: "zz"}, []string{"date", "accountId"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fields(ValidateExpense(tt.e, accounts)))
		})
	}
}

func TestValidateAccountIncomeExchangeBudget(t *testing.T) {
	accounts := NewAccountIndex([]model.Account{{ID: "a1"}, {ID: "a2"}})

	assert.Empty(t, ValidateAccount(model.Account{BankName: "SCB", Type: model.AccountTypeSavings}))
	assert.Equal(t, []string{"bankName", "accountType", "currency"},
		fields(ValidateAccount(model.Account{Type: "piggy", Currency: "EUR"})))

	assert.Empty(t, ValidateIncome(model.Income{Amount: 5, Category: model.IncomeBonus, Date: "2025-06-01", AccountID: "a2"}, accounts))
	assert.Equal(t, []string{"currency", "category"},
		fields(ValidateIncome(model.Income{Amount: 5, Currency: "EUR", Category: "gift", Date: "2025-06-01", AccountID: "a2"}, accounts)))

	assert.Empty(t, ValidateExchange(ExchangeParams{FromAccountID: "a1", ToAccountID: "a2", FromAmount: 100, Fees: 1}, accounts))
	assert.Equal(t, []string{"fromAmount", "fees", "toAccountId"},
		fields(ValidateExchange(ExchangeParams{FromAccountID: "a1", ToAccountID: "a1", FromAmount: 0, Fees: 5}, accounts)))

	assert.Empty(t, ValidateBudget(juneBudget(100)))
	bad := juneBudget(-1)
	bad.Month = "2025-13"
	assert.Equal(t, []string{"month", "categories.food"}, fields(ValidateBudget(bad)))
}

func TestJoinValidation(t *testing.T) {
	assert.NoError(t, JoinValidation(nil))

	err := JoinValidation([]ValidationError{{"amount", "must be positive"}, {"date", "is required"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount: must be positive")
	assert.Contains(t, err.Error(), "date: is required")

	var ve ValidationError
	assert.ErrorAs(t, err, &ve)
}
