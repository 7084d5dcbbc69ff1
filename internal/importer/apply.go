package importer

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/cleared-dev/moneytrack/internal/ledger"
	"github.com/cleared-dev/moneytrack/internal/model"
)

// Result counts what Apply recorded.
type Result struct {
	Expenses int
	Income   int
	Skipped  int
}

// Apply records txns against one account: money out becomes an expense
// (category from the row hint, else others) and money in becomes income.
// Zero-amount rows are skipped.
func Apply(ctx context.Context, store *ledger.Store, accountID string, method model.PaymentMethod, txns []Transaction) (Result, error) {
	account, ok := store.Account(ctx, accountID)
	if !ok {
		return Result{}, fmt.Errorf("account %q: %w", accountID, ledger.ErrNotFound)
	}

	var res Result
	for _, txn := range txns {
		amount := txn.Amount.Abs().InexactFloat64()
		switch {
		case txn.Amount.IsNegative():
			cat := model.Category(txn.Category)
			if !cat.Valid() {
				cat = model.CategoryOthers
			}
			store.AddExpense(ctx, model.Expense{
				Amount:        amount,
				Category:      cat,
				Description:   txn.Description,
				Date:          txn.Date,
				AccountID:     account.ID,
				PaymentMethod: method,
			})
			res.Expenses++
		case txn.Amount.IsPositive():
			store.RecordIncome(ctx, model.Income{
				Amount:      amount,
				Currency:    account.AccountCurrency(),
				Category:    model.IncomeOther,
				Description: txn.Description,
				Date:        txn.Date,
				AccountID:   account.ID,
				Source:      txn.Reference,
			})
			res.Income++
		default:
			res.Skipped++
		}
	}
	logx.WithContext(ctx).Infow("imported transactions",
		logx.Field("account", account.ID),
		logx.Field("expenses", res.Expenses),
		logx.Field("income", res.Income),
		logx.Field("skipped", res.Skipped))
	return res, nil
}
