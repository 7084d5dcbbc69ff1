package currency

import (
	"fmt"

	"github.com/cleared-dev/moneytrack/internal/model"
)

// RateFallback decides the rate used when a currency pair has no
// configured rate.
type RateFallback string

const (
	// FallbackOne treats the amount as already being in the target
	// currency (rate 1).
	FallbackOne RateFallback = "one"
	// FallbackNone converts to zero so the miss is visible.
	FallbackNone RateFallback = "none"
)

// ParseRateFallback maps a config value to a RateFallback. Empty means one.
func ParseRateFallback(s string) (RateFallback, error) {
	switch RateFallback(s) {
	case "", FallbackOne:
		return FallbackOne, nil
	case FallbackNone:
		return FallbackNone, nil
	}
	return "", fmt.Errorf("unknown rate fallback %q", s)
}

// Converter converts amounts between currencies using exchange settings.
type Converter struct {
	rates    map[string]float64
	fallback RateFallback
}

// NewConverter builds a Converter over the rates in settings.
func NewConverter(settings model.ExchangeSettings, fallback RateFallback) Converter {
	if fallback == "" {
		fallback = FallbackOne
	}
	return Converter{rates: settings.Rates, fallback: fallback}
}

// Fallback returns the policy applied to unknown pairs.
func (c Converter) Fallback() RateFallback { return c.fallback }

// Rate returns the rate for from→to and whether it came from the settings.
// Identical currencies always convert at 1. A configured rate of zero counts
// as missing.
func (c Converter) Rate(from, to model.Currency) (float64, bool) {
	if from == to {
		return 1, true
	}
	if r := c.rates[model.RateKey(from, to)]; r != 0 {
		return r, true
	}
	if c.fallback == FallbackNone {
		return 0, false
	}
	return 1, false
}

// Convert returns amount expressed in to.
func (c Converter) Convert(amount float64, from, to model.Currency) float64 {
	rate, _ := c.Rate(from, to)
	return amount * rate
}
