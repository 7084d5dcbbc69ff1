package ledger

import (
	"context"

	"github.com/cleared-dev/moneytrack/internal/currency"
	"github.com/cleared-dev/moneytrack/internal/kv"
	"github.com/cleared-dev/moneytrack/internal/model"
)

// ExchangeSettings returns the stored rates, or the built-in defaults when
// none are stored.
func (s *Store) ExchangeSettings(ctx context.Context) model.ExchangeSettings {
	settings := kv.Read(ctx, s.sub, kv.KeyExchangeSettings, model.DefaultExchangeSettings(s.Now()))
	if settings.Rates == nil {
		settings.Rates = map[string]float64{}
	}
	return settings
}

// SetExchangeSettings replaces the stored rates.
func (s *Store) SetExchangeSettings(ctx context.Context, settings model.ExchangeSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kv.Write(ctx, s.sub, kv.KeyExchangeSettings, settings)
}

// SetRate stores one directed rate. The inverse pair is not touched.
func (s *Store) SetRate(ctx context.Context, from, to model.Currency, rate float64) model.ExchangeSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings := s.ExchangeSettings(ctx)
	settings.Rates[model.RateKey(from, to)] = rate
	settings.LastUpdated = s.Now()
	kv.Write(ctx, s.sub, kv.KeyExchangeSettings, settings)
	return settings
}

// Converter returns a converter over the current rates using the store's
// rate fallback policy.
func (s *Store) Converter(ctx context.Context) currency.Converter {
	return currency.NewConverter(s.ExchangeSettings(ctx), s.fallback)
}
