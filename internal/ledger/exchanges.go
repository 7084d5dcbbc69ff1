package ledger

import (
	"context"
	"fmt"

	"github.com/cleared-dev/moneytrack/internal/id"
	"github.com/cleared-dev/moneytrack/internal/kv"
	"github.com/cleared-dev/moneytrack/internal/model"
)

// CurrencyExchanges returns every stored exchange.
func (s *Store) CurrencyExchanges(ctx context.Context) []model.CurrencyExchange {
	return kv.Read(ctx, s.sub, kv.KeyCurrencyExchanges, []model.CurrencyExchange{})
}

// SetCurrencyExchanges replaces the whole exchange list.
func (s *Store) SetCurrencyExchanges(ctx context.Context, exchanges []model.CurrencyExchange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kv.Write(ctx, s.sub, kv.KeyCurrencyExchanges, exchanges)
}

// AddCurrencyExchange appends x without touching any account.
func (s *Store) AddCurrencyExchange(ctx context.Context, x model.CurrencyExchange) model.CurrencyExchange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addCurrencyExchange(ctx, x)
}

func (s *Store) addCurrencyExchange(ctx context.Context, x model.CurrencyExchange) model.CurrencyExchange {
	if x.ID == "" {
		x.ID = s.newID("exchange")
	}
	exchanges := s.CurrencyExchanges(ctx)
	exchanges = append(exchanges, x)
	kv.Write(ctx, s.sub, kv.KeyCurrencyExchanges, exchanges)
	return x
}

// ExchangeParams describes a transfer between two accounts. Currencies are
// taken from the accounts. A zero Rate is looked up in the exchange
// settings.
type ExchangeParams struct {
	FromAccountID string  `json:"fromAccountId"`
	ToAccountID   string  `json:"toAccountId"`
	FromAmount    float64 `json:"fromAmount"`
	Fees          float64 `json:"fees"`
	Rate          float64 `json:"exchangeRate"`
	Date          string  `json:"date"`
	Description   string  `json:"description"`
}

// RecordExchange computes the received amount as (fromAmount - fees) * rate,
// appends the exchange, debits the source account by fromAmount and credits
// the destination by the received amount. Returns ErrNotFound when either
// account is missing, in which case nothing is written.
func (s *Store) RecordExchange(ctx context.Context, p ExchangeParams) (model.CurrencyExchange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	from, ok := s.Account(ctx, p.FromAccountID)
	if !ok {
		return model.CurrencyExchange{}, fmt.Errorf("source account %q: %w", p.FromAccountID, ErrNotFound)
	}
	to, ok := s.Account(ctx, p.ToAccountID)
	if !ok {
		return model.CurrencyExchange{}, fmt.Errorf("destination account %q: %w", p.ToAccountID, ErrNotFound)
	}

	rate := p.Rate
	if rate == 0 {
		rate, _ = s.Converter(ctx).Rate(from.AccountCurrency(), to.AccountCurrency())
	}
	date := p.Date
	if date == "" {
		date = id.DayOf(s.Now())
	}

	x := s.addCurrencyExchange(ctx, model.CurrencyExchange{
		FromAmount:    p.FromAmount,
		FromCurrency:  from.AccountCurrency(),
		ToAmount:      (p.FromAmount - p.Fees) * rate,
		ToCurrency:    to.AccountCurrency(),
		ExchangeRate:  rate,
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		Date:          date,
		Description:   p.Description,
		Fees:          p.Fees,
	})

	s.adjustBalance(ctx, from.ID, -x.FromAmount)
	s.adjustBalance(ctx, to.ID, x.ToAmount)
	return x, nil
}
