package ledger

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/moneytrack/internal/kv"
	"github.com/cleared-dev/moneytrack/internal/model"
)

func seed(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	a := s.AddAccount(ctx, thbAccount("Main", 1000))
	s.AddAccount(ctx, thbAccount("Spare", 50))
	s.AddBudget(ctx, juneBudget(800))
	s.AddExpense(ctx, food(a.ID, "2025-06-03", 120))
	s.CompleteWeeklyCheck(ctx, map[string]float64{a.ID: 900})
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newTestStore(t)
	seed(t, src)

	data, err := src.Export(ctx)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "exportDate")
	assert.Contains(t, string(data), "\n  \"accounts\"")

	dst := newTestStore(t)
	dst.AddAccount(ctx, thbAccount("Old", 1))
	require.True(t, dst.Import(ctx, data))

	assert.Equal(t, src.Accounts(ctx), dst.Accounts(ctx))
	assert.Equal(t, src.Budgets(ctx), dst.Budgets(ctx))
	assert.Equal(t, src.Expenses(ctx), dst.Expenses(ctx))
	assert.Equal(t, src.WeeklyAlerts(ctx), dst.WeeklyAlerts(ctx))
}

func TestImport_PartialDocument(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seed(t, s)
	expenses := s.Expenses(ctx)

	require.True(t, s.Import(ctx, []byte(`{"accounts": [], "budgets": null}`)))

	assert.Empty(t, s.Accounts(ctx))
	assert.Len(t, s.Budgets(ctx), 1)
	assert.Equal(t, expenses, s.Expenses(ctx))
}

func TestImport_MalformedChangesNothing(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seed(t, s)
	before, err := s.Export(ctx)
	require.NoError(t, err)

	for _, bad := range []string{`{"accounts": [`, `not json`, `[1,2]`, `{"accounts": "x"}`, `null`, `42`, `"accounts"`} {
		assert.False(t, s.Import(ctx, []byte(bad)), bad)
	}

	after, err := s.Export(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	s := New(kv.NewSubstrate(backend, kv.FallbackToDefault), WithClock(func() time.Time { return testNow }))
	seed(t, s)
	s.SetRate(ctx, model.CurrencyUSDT, model.CurrencyTHB, 33)

	s.ClearAll(ctx)

	assert.Empty(t, s.Accounts(ctx))
	assert.Empty(t, s.Budgets(ctx))
	assert.Empty(t, s.Expenses(ctx))
	assert.Empty(t, s.WeeklyAlerts(ctx))
	assert.Equal(t, 1/30.5, s.ExchangeSettings(ctx).Rates["USDT_THB"])
	for _, key := range kv.AllKeys {
		_, found, err := backend.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, found, key)
	}
}
