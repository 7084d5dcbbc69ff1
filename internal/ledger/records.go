package ledger

import (
	"context"

	"github.com/cleared-dev/moneytrack/internal/id"
	"github.com/cleared-dev/moneytrack/internal/kv"
	"github.com/cleared-dev/moneytrack/internal/model"
)

// MonthlyRecords returns every stored monthly record.
func (s *Store) MonthlyRecords(ctx context.Context) []model.MonthlyRecord {
	return kv.Read(ctx, s.sub, kv.KeyMonthlyRecords, []model.MonthlyRecord{})
}

// SetMonthlyRecords replaces the whole record list.
func (s *Store) SetMonthlyRecords(ctx context.Context, records []model.MonthlyRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setMonthlyRecords(ctx, records)
}

func (s *Store) setMonthlyRecords(ctx context.Context, records []model.MonthlyRecord) {
	kv.Write(ctx, s.sub, kv.KeyMonthlyRecords, records)
}

// AddMonthlyRecord stores r, replacing the record for the same month in
// place when one exists.
func (s *Store) AddMonthlyRecord(ctx context.Context, r model.MonthlyRecord) model.MonthlyRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addMonthlyRecord(ctx, r)
}

func (s *Store) addMonthlyRecord(ctx context.Context, r model.MonthlyRecord) model.MonthlyRecord {
	records := s.MonthlyRecords(ctx)
	for i := range records {
		if records[i].Month == r.Month {
			records[i] = r
			s.setMonthlyRecords(ctx, records)
			return r
		}
	}
	records = append(records, r)
	s.setMonthlyRecords(ctx, records)
	return r
}

// MonthlyRecord returns the stored record for month.
func (s *Store) MonthlyRecord(ctx context.Context, month string) (model.MonthlyRecord, bool) {
	for _, r := range s.MonthlyRecords(ctx) {
		if r.Month == month {
			return r, true
		}
	}
	return model.MonthlyRecord{}, false
}

// GenerateMonthlyRecord builds, without storing, a summary of month.
// Account balances are the live ones, whatever month is asked for.
// TotalIncome is left at zero for the caller to fill in.
func (s *Store) GenerateMonthlyRecord(ctx context.Context, month string) model.MonthlyRecord {
	var (
		breakdown     model.CategoryBreakdown
		totalExpenses float64
	)
	for _, e := range s.ExpensesForMonth(ctx, month) {
		cat := e.Category
		if !cat.Valid() {
			cat = model.CategoryOthers
		}
		breakdown.Add(cat, e.Amount)
		totalExpenses += e.Amount
	}

	accounts := s.Accounts(ctx)
	balances := make([]model.AccountBalance, 0, len(accounts))
	var totalBalance float64
	for _, a := range accounts {
		balances = append(balances, model.AccountBalance{
			AccountID:   a.ID,
			AccountName: a.Nickname,
			Balance:     a.Balance,
		})
		totalBalance += a.Balance
	}

	var utilization float64
	if budget, ok := s.BudgetFor(ctx, month); ok && budget.TotalBudget != 0 {
		utilization = totalExpenses / budget.TotalBudget * 100
	}

	now := s.Now()
	return model.MonthlyRecord{
		ID:                id.MonthlyRecordID(month, now),
		Month:             month,
		TotalExpenses:     totalExpenses,
		TotalSavings:      totalBalance,
		BudgetUtilization: utilization,
		AccountBalances:   balances,
		CategoryBreakdown: breakdown,
		CreatedAt:         now,
	}
}

// RecordPatch carries the caller-maintained fields of a monthly record.
type RecordPatch struct {
	TotalIncome *float64 `json:"totalIncome,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}

// UpdateMonthlyRecord merges patch into the stored record for month.
func (s *Store) UpdateMonthlyRecord(ctx context.Context, month string, patch RecordPatch) (model.MonthlyRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.MonthlyRecord(ctx, month)
	if !ok {
		return model.MonthlyRecord{}, false
	}
	if patch.TotalIncome != nil {
		r.TotalIncome = *patch.TotalIncome
	}
	if patch.Notes != nil {
		r.Notes = *patch.Notes
	}
	return s.addMonthlyRecord(ctx, r), true
}
