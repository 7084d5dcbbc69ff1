package model

import "time"

// CurrencyExchange moves money between two accounts in different currencies.
type CurrencyExchange struct {
	ID            string   `json:"id"`
	FromAmount    float64  `json:"fromAmount"`
	FromCurrency  Currency `json:"fromCurrency"`
	ToAmount      float64  `json:"toAmount"`
	ToCurrency    Currency `json:"toCurrency"`
	ExchangeRate  float64  `json:"exchangeRate"`
	FromAccountID string   `json:"fromAccountId"`
	ToAccountID   string   `json:"toAccountId"`
	Date          string   `json:"date"`
	Description   string   `json:"description"`
	Fees          float64  `json:"fees"`
}

// ExchangeSettings holds user-maintained conversion rates keyed "FROM_TO".
type ExchangeSettings struct {
	Rates       map[string]float64 `json:"rates"`
	LastUpdated time.Time          `json:"lastUpdated"`
	AutoUpdate  bool               `json:"autoUpdate"`
}

// RateKey returns the settings key for converting from into to.
func RateKey(from, to Currency) string {
	return string(from) + "_" + string(to)
}

// DefaultExchangeSettings returns the built-in rates for THB, USDT and MMK.
// Inverse pairs are not required to be reciprocal.
func DefaultExchangeSettings(now time.Time) ExchangeSettings {
	return ExchangeSettings{
		Rates: map[string]float64{
			"THB_USDT": 30.5,
			"USDT_THB": 1 / 30.5,
			"THB_MMK":  0.85,
			"MMK_THB":  1 / 0.85,
			"USDT_MMK": 26,
			"MMK_USDT": 1.0 / 26,
		},
		LastUpdated: now,
		AutoUpdate:  false,
	}
}
