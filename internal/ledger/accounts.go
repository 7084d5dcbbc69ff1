package ledger

import (
	"context"

	"github.com/cleared-dev/moneytrack/internal/kv"
	"github.com/cleared-dev/moneytrack/internal/model"
)

// Accounts returns every stored account.
func (s *Store) Accounts(ctx context.Context) []model.Account {
	return kv.Read(ctx, s.sub, kv.KeyAccounts, []model.Account{})
}

// SetAccounts replaces the whole account list.
func (s *Store) SetAccounts(ctx context.Context, accounts []model.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setAccounts(ctx, accounts)
}

func (s *Store) setAccounts(ctx context.Context, accounts []model.Account) {
	kv.Write(ctx, s.sub, kv.KeyAccounts, accounts)
}

// AddAccount appends a. When a is default every other account loses the
// flag; the first account ever added always becomes default.
func (s *Store) AddAccount(ctx context.Context, a model.Account) model.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	accounts := s.Accounts(ctx)
	if a.ID == "" {
		a.ID = s.newID("account")
	}
	if a.IsDefault {
		clearDefault(accounts)
	}
	if len(accounts) == 0 {
		a.IsDefault = true
	}
	accounts = append(accounts, a)
	s.setAccounts(ctx, accounts)
	return a
}

// UpdateAccount merges patch into the account with id. Setting isDefault
// clears it everywhere else first. Returns false, without writing, when no
// such account exists.
func (s *Store) UpdateAccount(ctx context.Context, id string, patch model.AccountPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateAccount(ctx, id, patch)
}

func (s *Store) updateAccount(ctx context.Context, id string, patch model.AccountPatch) bool {
	accounts := s.Accounts(ctx)
	idx := indexOfAccount(accounts, id)
	if idx == -1 {
		return false
	}
	if patch.SetsDefault() {
		clearDefault(accounts)
	}
	accounts[idx] = patch.Apply(accounts[idx])
	s.setAccounts(ctx, accounts)
	return true
}

// DeleteAccount removes the account with id. If it was the default, the
// first remaining account is promoted.
func (s *Store) DeleteAccount(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	accounts := s.Accounts(ctx)
	idx := indexOfAccount(accounts, id)
	if idx == -1 {
		return false
	}
	deleted := accounts[idx]
	remaining := append(accounts[:idx:idx], accounts[idx+1:]...)
	if deleted.IsDefault && len(remaining) > 0 {
		remaining[0].IsDefault = true
	}
	s.setAccounts(ctx, remaining)
	return true
}

// DefaultAccount returns the first account that is both active and default.
func (s *Store) DefaultAccount(ctx context.Context) (model.Account, bool) {
	for _, a := range s.Accounts(ctx) {
		if a.IsDefault && a.IsActive {
			return a, true
		}
	}
	return model.Account{}, false
}

// Account looks up an account by id.
func (s *Store) Account(ctx context.Context, id string) (model.Account, bool) {
	accounts := s.Accounts(ctx)
	if idx := indexOfAccount(accounts, id); idx != -1 {
		return accounts[idx], true
	}
	return model.Account{}, false
}

// adjustBalance adds delta to an account's balance and stamps lastUpdated.
func (s *Store) adjustBalance(ctx context.Context, id string, delta float64) bool {
	a, ok := s.Account(ctx, id)
	if !ok {
		return false
	}
	balance := a.Balance + delta
	now := s.Now()
	return s.updateAccount(ctx, id, model.AccountPatch{Balance: &balance, LastUpdated: &now})
}

func clearDefault(accounts []model.Account) {
	for i := range accounts {
		accounts[i].IsDefault = false
	}
}

func indexOfAccount(accounts []model.Account, id string) int {
	for i, a := range accounts {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// AccountIndex answers existence checks for validation.
type AccountIndex map[string]model.Account

// NewAccountIndex indexes accounts by ID.
func NewAccountIndex(accounts []model.Account) AccountIndex {
	idx := make(AccountIndex, len(accounts))
	for _, a := range accounts {
		idx[a.ID] = a
	}
	return idx
}

// Exists reports whether an account ID is known.
func (idx AccountIndex) Exists(id string) bool {
	_, ok := idx[id]
	return ok
}
