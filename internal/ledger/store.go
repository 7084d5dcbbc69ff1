// Package ledger is the personal finance ledger: one repository per entity
// collection over a kv.Substrate, plus the rules that keep balances and
// budget totals consistent when expenses, income and exchanges are recorded.
//
// Every call loads the whole collection and writes it back whole. Mutations
// that touch several collections are sequences of independent writes; an
// interruption between them leaves the ledger inconsistent but readable.
// A Store serializes its mutations, so one Store may be shared by
// concurrent callers such as HTTP handlers. Separate processes over the
// same backend are not coordinated.
package ledger

import (
	"errors"
	"sync"
	"time"

	"github.com/cleared-dev/moneytrack/internal/currency"
	"github.com/cleared-dev/moneytrack/internal/id"
	"github.com/cleared-dev/moneytrack/internal/kv"
)

// ErrNotFound is returned by callers that need to surface a missed lookup.
// The repositories themselves treat misses as no-ops.
var ErrNotFound = errors.New("not found")

// Store is the ledger facade. Construct one with New and share it.
type Store struct {
	// mu is held across each exported mutation and its derived effects.
	// Unexported helpers assume it is held.
	mu sync.Mutex

	sub      *kv.Substrate
	now      func() time.Time
	newID    func(prefix string) string
	fallback currency.RateFallback
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the source of "now". The current month is always
// derived from it.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithRateFallback sets the policy for currency pairs without a rate.
func WithRateFallback(f currency.RateFallback) Option {
	return func(s *Store) { s.fallback = f }
}

// WithIDs overrides entity ID generation.
func WithIDs(fn func(prefix string) string) Option {
	return func(s *Store) { s.newID = fn }
}

// New creates a Store over sub.
func New(sub *kv.Substrate, opts ...Option) *Store {
	s := &Store{
		sub:      sub,
		now:      time.Now,
		newID:    id.New,
		fallback: currency.FallbackOne,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Substrate exposes the underlying substrate for diagnostics.
func (s *Store) Substrate() *kv.Substrate { return s.sub }

// Now returns the store's current time in UTC.
func (s *Store) Now() time.Time { return s.now().UTC() }

// CurrentMonth is the month key of the store's today, e.g. "2025-06".
func (s *Store) CurrentMonth() string { return id.MonthOf(s.now()) }

func (s *Store) timestamp() string {
	return s.Now().Format("2006-01-02T15:04:05.000Z07:00")
}
