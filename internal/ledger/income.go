package ledger

import (
	"context"
	"slices"

	"github.com/cleared-dev/moneytrack/internal/kv"
	"github.com/cleared-dev/moneytrack/internal/model"
)

// Income returns every stored income record.
func (s *Store) Income(ctx context.Context) []model.Income {
	return kv.Read(ctx, s.sub, kv.KeyIncome, []model.Income{})
}

// SetIncome replaces the whole income list.
func (s *Store) SetIncome(ctx context.Context, income []model.Income) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setIncome(ctx, income)
}

func (s *Store) setIncome(ctx context.Context, income []model.Income) {
	kv.Write(ctx, s.sub, kv.KeyIncome, income)
}

// AddIncome appends in to the income list. It does not touch any account;
// use RecordIncome for that.
func (s *Store) AddIncome(ctx context.Context, in model.Income) model.Income {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addIncome(ctx, in)
}

func (s *Store) addIncome(ctx context.Context, in model.Income) model.Income {
	if in.ID == "" {
		in.ID = s.newID("income")
	}
	income := s.Income(ctx)
	income = append(income, in)
	s.setIncome(ctx, income)
	return in
}

// DeleteIncome removes the income record with id. The account balance it
// was credited to is left as is.
func (s *Store) DeleteIncome(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	income := s.Income(ctx)
	idx := slices.IndexFunc(income, func(in model.Income) bool { return in.ID == id })
	if idx == -1 {
		return false
	}
	s.setIncome(ctx, slices.Delete(income, idx, idx+1))
	return true
}

// RecordIncome appends in and credits its account, converting the amount
// into the account's currency. The credited amount is returned. When the
// account does not exist the income is still recorded and nothing is
// credited.
func (s *Store) RecordIncome(ctx context.Context, in model.Income) (model.Income, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	in = s.addIncome(ctx, in)

	account, ok := s.Account(ctx, in.AccountID)
	if !ok {
		return in, 0
	}
	from := in.Currency
	if from == "" {
		from = model.CurrencyTHB
	}
	credited := s.Converter(ctx).Convert(in.Amount, from, account.AccountCurrency())
	s.adjustBalance(ctx, account.ID, credited)
	return in, credited
}
