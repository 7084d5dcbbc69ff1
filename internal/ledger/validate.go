package ledger

import (
	"errors"
	"fmt"
	"math"

	"github.com/cleared-dev/moneytrack/internal/id"
	"github.com/cleared-dev/moneytrack/internal/model"
)

// ValidationError describes one invalid field of an input record.
type ValidationError struct {
	Field       string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Description)
}

// AccountChecker tests whether an account ID exists.
type AccountChecker interface {
	Exists(id string) bool
}

// JoinValidation folds validation errors into a single error, or nil.
func JoinValidation(errs []ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	joined := make([]error, len(errs))
	for i, e := range errs {
		joined[i] = e
	}
	return errors.Join(joined...)
}

// ValidateAccount checks an account before it is stored.
func ValidateAccount(a model.Account) []ValidationError {
	var errs []ValidationError
	if a.BankName == "" {
		errs = append(errs, ValidationError{"bankName", "is required"})
	}
	if !a.Type.Valid() {
		errs = append(errs, ValidationError{"accountType", fmt.Sprintf("unknown account type %q", a.Type)})
	}
	if a.Currency != "" && !a.Currency.Valid() {
		errs = append(errs, ValidationError{"currency", fmt.Sprintf("unknown currency %q", a.Currency)})
	}
	if !finite(a.Balance) {
		errs = append(errs, ValidationError{"balance", "must be a finite number"})
	}
	return errs
}

// ValidateExpense checks an expense before it is recorded.
func ValidateExpense(e model.Expense, accounts AccountChecker) []ValidationError {
	var errs []ValidationError
	if !finite(e.Amount) || e.Amount < 0 {
		errs = append(errs, ValidationError{"amount", "must be a non-negative number"})
	}
	if !e.Category.Valid() {
		errs = append(errs, ValidationError{"category", fmt.Sprintf("unknown category %q", e.Category)})
	}
	if e.PaymentMethod != "" && !e.PaymentMethod.Valid() {
		errs = append(errs, ValidationError{"paymentMethod", fmt.Sprintf("unknown payment method %q", e.PaymentMethod)})
	}
	if _, err := id.ParseDay(e.Date); err != nil {
		errs = append(errs, ValidationError{"date", err.Error()})
	}
	if !accounts.Exists(e.AccountID) {
		errs = append(errs, ValidationError{"accountId", fmt.Sprintf("account %q not found", e.AccountID)})
	}
	return errs
}

// ValidateIncome checks an income record before it is recorded.
func ValidateIncome(in model.Income, accounts AccountChecker) []ValidationError {
	var errs []ValidationError
	if !finite(in.Amount) || in.Amount < 0 {
		errs = append(errs, ValidationError{"amount", "must be a non-negative number"})
	}
	if in.Currency != "" && !in.Currency.Valid() {
		errs = append(errs, ValidationError{"currency", fmt.Sprintf("unknown currency %q", in.Currency)})
	}
	if !in.Category.Valid() {
		errs = append(errs, ValidationError{"category", fmt.Sprintf("unknown income category %q", in.Category)})
	}
	if _, err := id.ParseDay(in.Date); err != nil {
		errs = append(errs, ValidationError{"date", err.Error()})
	}
	if !accounts.Exists(in.AccountID) {
		errs = append(errs, ValidationError{"accountId", fmt.Sprintf("account %q not found", in.AccountID)})
	}
	return errs
}

// ValidateExchange checks exchange parameters before they are recorded.
func ValidateExchange(p ExchangeParams, accounts AccountChecker) []ValidationError {
	var errs []ValidationError
	if !finite(p.FromAmount) || p.FromAmount <= 0 {
		errs = append(errs, ValidationError{"fromAmount", "must be positive"})
	}
	if !finite(p.Fees) || p.Fees < 0 || p.Fees > p.FromAmount {
		errs = append(errs, ValidationError{"fees", "must be between zero and the amount sent"})
	}
	if !finite(p.Rate) || p.Rate < 0 {
		errs = append(errs, ValidationError{"exchangeRate", "must be a non-negative number"})
	}
	if p.FromAccountID == p.ToAccountID {
		errs = append(errs, ValidationError{"toAccountId", "must differ from the source account"})
	}
	if !accounts.Exists(p.FromAccountID) {
		errs = append(errs, ValidationError{"fromAccountId", fmt.Sprintf("account %q not found", p.FromAccountID)})
	}
	if !accounts.Exists(p.ToAccountID) {
		errs = append(errs, ValidationError{"toAccountId", fmt.Sprintf("account %q not found", p.ToAccountID)})
	}
	if p.Date != "" {
		if _, err := id.ParseDay(p.Date); err != nil {
			errs = append(errs, ValidationError{"date", err.Error()})
		}
	}
	return errs
}

// ValidateBudget checks a budget before it is stored.
func ValidateBudget(b model.Budget) []ValidationError {
	var errs []ValidationError
	if _, _, err := id.ParseMonth(b.Month); err != nil {
		errs = append(errs, ValidationError{"month", err.Error()})
	}
	if !finite(b.TotalBudget) || b.TotalBudget < 0 {
		errs = append(errs, ValidationError{"totalBudget", "must be a non-negative number"})
	}
	for _, cat := range model.ExpenseCategories {
		if c := b.Categories.Get(cat); !finite(c.Allocated) || c.Allocated < 0 {
			errs = append(errs, ValidationError{"categories." + string(cat), "allocation must be a non-negative number"})
		}
	}
	return errs
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
