// Package kv provides the key/value substrate the ledger persists into.
// Each collection lives under one fixed key as a JSON document.
package kv

import (
	"context"
	"errors"
)

// Fixed storage keys, one per collection.
const (
	KeyAccounts          = "money-tracker-accounts"
	KeyBudgets           = "money-tracker-budgets"
	KeyExpenses          = "money-tracker-expenses"
	KeyIncome            = "money-tracker-income"
	KeyCurrencyExchanges = "money-tracker-currency-exchanges"
	KeyExchangeSettings  = "money-tracker-exchange-settings"
	KeyWeeklyAlerts      = "money-tracker-weekly-alerts"
	KeyAppState          = "money-tracker-app-state"
	KeyMonthlyRecords    = "money-tracker-monthly-records"
)

// AllKeys lists every key the ledger owns.
var AllKeys = []string{
	KeyAccounts,
	KeyBudgets,
	KeyExpenses,
	KeyIncome,
	KeyCurrencyExchanges,
	KeyExchangeSettings,
	KeyWeeklyAlerts,
	KeyAppState,
	KeyMonthlyRecords,
}

// ErrUnknownDriver is returned by Open for an unrecognised storage driver.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Backend is a raw string key/value store.
type Backend interface {
	// Get returns the value under key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Headless is the backend used when no persistent store is reachable.
// Reads always miss and writes are dropped.
type Headless struct{}

func (Headless) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (Headless) Set(context.Context, string, string) error         { return nil }
func (Headless) Delete(context.Context, string) error              { return nil }
func (Headless) Close() error                                      { return nil }
