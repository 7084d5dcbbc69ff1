package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/moneytrack/internal/id"
)

// GenericParser reads "date,description,amount[,category]" with a header
// row. Dates are YYYY-MM-DD; amounts may carry a ฿ sign and thousands
// separators.
type GenericParser struct{}

// Format returns the parser name.
func (p *GenericParser) Format() string { return "generic" }

// Parse reads a generic CSV and returns Transactions.
func (p *GenericParser) Parse(r io.Reader) ([]Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading generic CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var txns []Transaction
	for i, rec := range records[1:] {
		if len(rec) < 3 || len(rec) > 4 {
			return nil, fmt.Errorf("row %d: expected 3 or 4 fields, got %d", i+2, len(rec))
		}
		txn, err := parseGenericRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func parseGenericRow(rec []string) (Transaction, error) {
	date := strings.TrimSpace(rec[0])
	if _, err := id.ParseDay(date); err != nil {
		return Transaction{}, fmt.Errorf("parsing date: %w", err)
	}
	amount, err := parseAmount(rec[2])
	if err != nil {
		return Transaction{}, fmt.Errorf("parsing amount %q: %w", rec[2], err)
	}
	txn := Transaction{
		Date:        date,
		Description: strings.TrimSpace(rec[1]),
		Amount:      amount,
	}
	if len(rec) == 4 {
		txn.Category = strings.ToLower(strings.TrimSpace(rec[3]))
	}
	txn.Reference = reference("generic", txn.Date, txn.Description)
	return txn, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer("฿", "", ",", "", " ", "").Replace(s)
	return decimal.NewFromString(clean)
}
