package model

// Currency is an ISO-like currency code.
type Currency string

const (
	CurrencyTHB  Currency = "THB"
	CurrencyUSDT Currency = "USDT"
	CurrencyMMK  Currency = "MMK"
)

// Currencies lists the currencies the ledger knows rates for.
var Currencies = []Currency{CurrencyTHB, CurrencyUSDT, CurrencyMMK}

// Valid reports whether c is one of the supported currencies.
func (c Currency) Valid() bool {
	for _, v := range Currencies {
		if c == v {
			return true
		}
	}
	return false
}
