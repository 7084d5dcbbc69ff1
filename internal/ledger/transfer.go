package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/cleared-dev/moneytrack/internal/kv"
	"github.com/cleared-dev/moneytrack/internal/model"
)

// Snapshot is the bulk export document.
type Snapshot struct {
	Accounts     []model.Account     `json:"accounts"`
	Budgets      []model.Budget      `json:"budgets"`
	Expenses     []model.Expense     `json:"expenses"`
	WeeklyAlerts []model.WeeklyAlert `json:"weeklyAlerts"`
	ExportDate   string              `json:"exportDate"`
}

// importDoc mirrors Snapshot with optional collections.
type importDoc struct {
	Accounts     *[]model.Account     `json:"accounts"`
	Budgets      *[]model.Budget      `json:"budgets"`
	Expenses     *[]model.Expense     `json:"expenses"`
	WeeklyAlerts *[]model.WeeklyAlert `json:"weeklyAlerts"`
}

// Export returns the accounts, budgets, expenses and weekly alerts as one
// indented JSON document.
func (s *Store) Export(ctx context.Context) ([]byte, error) {
	snap := Snapshot{
		Accounts:     s.Accounts(ctx),
		Budgets:      s.Budgets(ctx),
		Expenses:     s.Expenses(ctx),
		WeeklyAlerts: s.WeeklyAlerts(ctx),
		ExportDate:   s.timestamp(),
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}
	return data, nil
}

// Import overwrites every collection present in data. Collections absent
// from the document, or null, are left untouched. A document that fails to
// parse, or whose top level is not an object, changes nothing and returns
// false.
func (s *Store) Import(ctx context.Context, data []byte) bool {
	doc, err := parseImport(data)
	if err != nil {
		logx.WithContext(ctx).Errorw("import failed", logx.Field("error", err.Error()))
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if doc.Accounts != nil {
		s.setAccounts(ctx, *doc.Accounts)
	}
	if doc.Budgets != nil {
		s.setBudgets(ctx, *doc.Budgets)
	}
	if doc.Expenses != nil {
		s.setExpenses(ctx, *doc.Expenses)
	}
	if doc.WeeklyAlerts != nil {
		s.setWeeklyAlerts(ctx, *doc.WeeklyAlerts)
	}
	return true
}

func parseImport(data []byte) (importDoc, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return importDoc{}, fmt.Errorf("decoding import: %w", err)
	}
	if top == nil {
		return importDoc{}, errors.New("decoding import: document is null")
	}
	var doc importDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return importDoc{}, fmt.Errorf("decoding import: %w", err)
	}
	return doc, nil
}

// ClearAll removes every ledger key from the substrate.
func (s *Store) ClearAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range kv.AllKeys {
		s.sub.Remove(ctx, key)
	}
}
