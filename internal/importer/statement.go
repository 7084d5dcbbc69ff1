package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// StatementParser parses the withdrawal/deposit statement layout exported
// by Thai retail banks: "Date,Description,Withdrawal,Deposit,Balance"
// with day-first dates.
type StatementParser struct{}

const (
	statementDateFormat  = "02/01/2006"
	statementNumFields   = 5
	statementColDate     = 0
	statementColDesc     = 1
	statementColWithdraw = 2
	statementColDeposit  = 3
)

// Format returns the parser name.
func (p *StatementParser) Format() string { return "statement" }

// Parse reads a statement CSV and returns Transactions.
func (p *StatementParser) Parse(r io.Reader) ([]Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = statementNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var txns []Transaction
	for i, rec := range records[1:] {
		txn, err := parseStatementRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func parseStatementRow(rec []string) (Transaction, error) {
	date, err := time.Parse(statementDateFormat, strings.TrimSpace(rec[statementColDate]))
	if err != nil {
		return Transaction{}, fmt.Errorf("parsing date %q: %w", rec[statementColDate], err)
	}

	withdrawal, err := optionalAmount(rec[statementColWithdraw])
	if err != nil {
		return Transaction{}, fmt.Errorf("parsing withdrawal %q: %w", rec[statementColWithdraw], err)
	}
	deposit, err := optionalAmount(rec[statementColDeposit])
	if err != nil {
		return Transaction{}, fmt.Errorf("parsing deposit %q: %w", rec[statementColDeposit], err)
	}

	day := date.Format("2006-01-02")
	desc := strings.TrimSpace(rec[statementColDesc])
	return Transaction{
		Date:        day,
		Description: desc,
		Amount:      deposit.Sub(withdrawal),
		Reference:   reference("statement", day, desc),
	}, nil
}

func optionalAmount(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	return parseAmount(s)
}
