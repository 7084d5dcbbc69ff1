package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cleared-dev/moneytrack/internal/model"
)

const (
	numFields        = 9
	colID            = 0
	colDate          = 1
	colAmount        = 2
	colCategory      = 3
	colDescription   = 4
	colAccountID     = 5
	colPaymentMethod = 6
	colLocation      = 7
	colRecurring     = 8
)

var expenseHeader = []string{"id", "date", "amount", "category", "description", "account_id", "payment_method", "location", "is_recurring"}

// ReadExpenses reads an expense CSV written by WriteExpenses.
func ReadExpenses(r io.Reader) ([]model.Expense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading expenses CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var expenses []model.Expense
	for i, rec := range records[1:] {
		e, err := UnmarshalExpense(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

// WriteExpenses writes expenses as CSV with a header row.
func WriteExpenses(w io.Writer, expenses []model.Expense) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(expenseHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, e := range expenses {
		if err := cw.Write(MarshalExpense(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalExpense converts an Expense to a CSV row.
func MarshalExpense(e model.Expense) []string {
	row := make([]string, numFields)
	row[colID] = e.ID
	row[colDate] = e.Date
	row[colAmount] = strconv.FormatFloat(e.Amount, 'f', -1, 64)
	row[colCategory] = string(e.Category)
	row[colDescription] = e.Description
	row[colAccountID] = e.AccountID
	row[colPaymentMethod] = string(e.PaymentMethod)
	row[colLocation] = e.Location
	row[colRecurring] = strconv.FormatBool(e.IsRecurring)
	return row
}

// UnmarshalExpense converts a CSV row to an Expense.
func UnmarshalExpense(record []string) (model.Expense, error) {
	if len(record) != numFields {
		return model.Expense{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	amount, err := strconv.ParseFloat(record[colAmount], 64)
	if err != nil {
		return model.Expense{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	var recurring bool
	if record[colRecurring] != "" {
		recurring, err = strconv.ParseBool(record[colRecurring])
		if err != nil {
			return model.Expense{}, fmt.Errorf("parsing is_recurring %q: %w", record[colRecurring], err)
		}
	}

	return model.Expense{
		ID:            record[colID],
		Date:          record[colDate],
		Amount:        amount,
		Category:      model.Category(record[colCategory]),
		Description:   record[colDescription],
		AccountID:     record[colAccountID],
		PaymentMethod: model.PaymentMethod(record[colPaymentMethod]),
		Location:      record[colLocation],
		IsRecurring:   recurring,
	}, nil
}
