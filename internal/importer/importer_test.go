package importer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/cleared-dev/moneytrack/internal/kv"
	"github.com/cleared-dev/moneytrack/internal/ledger"
	"github.com/cleared-dev/moneytrack/internal/model"
)

func init() {
	logx.Disable()
}

func parseFile(t *testing.T, p Parser, name string) []Transaction {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	defer f.Close()

	txns, err := p.Parse(f)
	require.NoError(t, err)
	return txns
}

func TestStatementParser_Parse(t *testing.T) {
	txns := parseFile(t, &StatementParser{}, "statement.csv")
	require.Len(t, txns, 6)

	assert.Equal(t, "2025-06-01", txns[0].Date)
	assert.Equal(t, "7-ELEVEN SUKHUMVIT 21", txns[0].Description)
	assert.Equal(t, "-85.00", txns[0].Amount.StringFixed(2))
	assert.Equal(t, "statement_20250601_7ELEVENSUK", txns[0].Reference)

	assert.Equal(t, "45000.00", txns[2].Amount.StringFixed(2))
	assert.Equal(t, "-1299.00", txns[3].Amount.StringFixed(2))
	assert.True(t, txns[4].Amount.IsZero())
	assert.Equal(t, "2025-06-10", txns[5].Date)
}

func TestStatementParser_Errors(t *testing.T) {
	header := "Date,Description,Withdrawal,Deposit,Balance\n"
	p := &StatementParser{}

	txns, err := p.Parse(strings.NewReader(header))
	require.NoError(t, err)
	assert.Nil(t, txns)

	_, err = p.Parse(strings.NewReader(header + "2025-06-01,x,1,,1\n"))
	assert.ErrorContains(t, err, "parsing date")

	_, err = p.Parse(strings.NewReader(header + "01/06/2025,x,abc,,1\n"))
	assert.ErrorContains(t, err, "parsing withdrawal")

	_, err = p.Parse(strings.NewReader(header + "01/06/2025,x,1\n"))
	assert.Error(t, err)
}

func TestGenericParser_Parse(t *testing.T) {
	txns := parseFile(t, &GenericParser{}, "generic.csv")
	require.Len(t, txns, 4)

	assert.Equal(t, "food", txns[0].Category)
	assert.Equal(t, "transport", txns[1].Category)
	assert.Equal(t, "-150.50", txns[1].Amount.StringFixed(2))
	assert.Equal(t, "12000.00", txns[2].Amount.StringFixed(2))
	assert.Empty(t, txns[2].Category)
}

func TestGenericParser_ThreeColumnsAndErrors(t *testing.T) {
	p := &GenericParser{}
	txns, err := p.Parse(strings.NewReader("date,description,amount\n2025-06-01,Coffee,-45\n"))
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Empty(t, txns[0].Category)

	_, err = p.Parse(strings.NewReader("date,description,amount\n06/01/2025,Coffee,-45\n"))
	assert.ErrorContains(t, err, "row 2: parsing date")

	_, err = p.Parse(strings.NewReader("date,description,amount\n2025-06-01,Coffee,lots\n"))
	assert.ErrorContains(t, err, "parsing amount")

	_, err = p.Parse(strings.NewReader("date,description,amount\n2025-06-01,Coffee\n"))
	assert.ErrorContains(t, err, "expected 3 or 4 fields")
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))

	r.Register(&StatementParser{})
	assert.NotNil(t, r.Get("Statement"))
	assert.Panics(t, func() { r.Register(&StatementParser{}) })

	d := DefaultRegistry()
	assert.ElementsMatch(t, []string{"generic", "statement"}, d.Formats())
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	store := ledger.New(kv.NewSubstrate(kv.NewMemory(), kv.FallbackToDefault), ledger.WithClock(func() time.Time { return now }))
	acct := store.AddAccount(ctx, model.Account{BankName: "SCB", Type: model.AccountTypeSavings, Balance: 1000, IsActive: true})

	var cats model.Categories
	require.NoError(t, cats.Set(model.CategoryFood, model.BudgetCategory{Allocated: 5000}))
	store.AddBudget(ctx, model.Budget{Month: "2025-06", TotalBudget: 10000, Categories: cats})

	txns := parseFile(t, &GenericParser{}, "generic.csv")
	res, err := Apply(ctx, store, acct.ID, model.PaymentDebitCard, txns)
	require.NoError(t, err)
	assert.Equal(t, Result{Expenses: 3, Income: 1}, res)

	got, _ := store.Account(ctx, acct.ID)
	assert.InDelta(t, 1000-60-150.5-20+12000, got.Balance, 1e-9)

	expenses := store.Expenses(ctx)
	require.Len(t, expenses, 3)
	assert.Equal(t, model.CategoryFood, expenses[0].Category)
	assert.Equal(t, model.CategoryTransport, expenses[1].Category)
	assert.Equal(t, model.CategoryOthers, expenses[2].Category)
	assert.Equal(t, model.PaymentDebitCard, expenses[0].PaymentMethod)

	budget, _ := store.CurrentBudget(ctx)
	assert.Equal(t, 60.0, budget.Categories.Food.Spent)

	income := store.Income(ctx)
	require.Len(t, income, 1)
	assert.Equal(t, model.IncomeOther, income[0].Category)
	assert.Equal(t, model.CurrencyTHB, income[0].Currency)

	_, err = Apply(ctx, store, "missing", model.PaymentCash, txns)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestExpenseCSVRoundTrip(t *testing.T) {
	expenses := []model.Expense{
		{ID: "e1", Date: "2025-06-01", Amount: 85.25, Category: model.CategoryFood, Description: "lunch, with friends", AccountID: "a1", PaymentMethod: model.PaymentCash},
		{ID: "e2", Date: "2025-06-02", Amount: 1299, Category: model.CategoryBills, AccountID: "a1", Location: "Bangkok", IsRecurring: true},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteExpenses(&buf, expenses))
	assert.True(t, strings.HasPrefix(buf.String(), "id,date,amount,category,"))

	got, err := ReadExpenses(&buf)
	require.NoError(t, err)
	assert.Equal(t, expenses, got)
}

func TestReadExpenses_Errors(t *testing.T) {
	header := strings.Join(expenseHeader, ",") + "\n"

	got, err := ReadExpenses(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ReadExpenses(strings.NewReader(header + "e1,2025-06-01,abc,food,,a1,cash,,false\n"))
	assert.ErrorContains(t, err, "parsing amount")

	_, err = ReadExpenses(strings.NewReader(header + "e1,2025-06-01,1,food,,a1,cash,,maybe\n"))
	assert.ErrorContains(t, err, "parsing is_recurring")
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Nil(t, files)

	processed := filepath.Join(dir, "import", "processed")
	require.NoError(t, os.MkdirAll(processed, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "import", "june.CSV"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "import", "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(processed, "may.csv"), []byte("x"), 0o644))

	files, err = Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "june.CSV", files[0].Name)
	assert.Equal(t, int64(1), files[0].Size)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "import"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "import", "bank.csv"), []byte("data"), 0o644))

	require.NoError(t, MarkProcessed(dir, "bank.csv"))

	_, err := os.Stat(filepath.Join(dir, "import", "bank.csv"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "import", "processed", "bank.csv"))
	assert.NoError(t, err)

	assert.Error(t, MarkProcessed(dir, "missing.csv"))
}
