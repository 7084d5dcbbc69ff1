// Package currency converts between the ledger's currencies and formats
// amounts for display.
package currency

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/moneytrack/internal/model"
)

var symbols = map[model.Currency]string{
	model.CurrencyTHB:  "฿",
	model.CurrencyUSDT: "₮",
	model.CurrencyMMK:  "K",
}

func init() {
	// Pin the display rules for the ledger currencies; USDT is not an ISO
	// code and is unknown to go-money.
	for code, sym := range symbols {
		money.AddCurrency(string(code), sym, "$1", ".", ",", 2)
	}
}

// Symbol returns the display symbol for code, or the code itself.
func Symbol(code model.Currency) string {
	if s, ok := symbols[code]; ok {
		return s
	}
	if c := money.GetCurrency(string(code)); c != nil {
		return c.Grapheme
	}
	return string(code)
}

// toMinor rounds amount to two places and returns it in hundredths.
func toMinor(amount float64) int64 {
	return decimal.NewFromFloat(amount).Round(2).Shift(2).IntPart()
}

func finite(amount float64) bool {
	return !math.IsNaN(amount) && !math.IsInf(amount, 0)
}

// Format renders amount in code, e.g. "฿1,234.50" or "-$12.00".
func Format(amount float64, code model.Currency) string {
	if !finite(amount) {
		amount = 0
	}
	if money.GetCurrency(string(code)) == nil {
		return string(code) + " " + decimal.NewFromFloat(amount).StringFixed(2)
	}
	return money.New(toMinor(amount), string(code)).Display()
}

// FormatTHB renders amount as Thai Baht with two decimals and thousands
// separators. NaN and infinities render as zero.
func FormatTHB(amount float64, showSymbol bool) string {
	if !finite(amount) {
		if showSymbol {
			return "฿0.00"
		}
		return "0.00"
	}
	s := Format(amount, model.CurrencyTHB)
	if !showSymbol {
		s = strings.Replace(s, symbols[model.CurrencyTHB], "", 1)
	}
	return s
}

// FormatTHBCompact abbreviates thousands and millions, e.g. "฿1.2M".
func FormatTHBCompact(amount float64) string {
	if !finite(amount) {
		return "฿0.00"
	}
	abs := math.Abs(amount)
	switch {
	case abs >= 1_000_000:
		return "฿" + decimal.NewFromFloat(amount/1_000_000).StringFixed(1) + "M"
	case abs >= 1_000:
		return "฿" + decimal.NewFromFloat(amount/1_000).StringFixed(1) + "K"
	}
	return FormatTHB(amount, true)
}

// ParseTHB parses a Baht string such as "฿1,234.50". Unparseable input
// yields 0.
func ParseTHB(value string) float64 {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '฿', ',', ' ', '\t', '\n':
			return -1
		}
		return r
	}, value)
	if clean == "" {
		return 0
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

// IsValidAmount reports whether amount is a finite, non-negative number.
func IsValidAmount(amount float64) bool {
	return finite(amount) && amount >= 0
}
