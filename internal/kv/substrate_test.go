package kv

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/logx"
)

func init() {
	logx.Disable()
}

type record struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
}

// brokenBackend fails every call.
type brokenBackend struct{}

var errBroken = errors.New("quota exceeded")

func (brokenBackend) Get(context.Context, string) (string, bool, error) { return "", false, errBroken }
func (brokenBackend) Set(context.Context, string, string) error         { return errBroken }
func (brokenBackend) Delete(context.Context, string) error              { return errBroken }
func (brokenBackend) Close() error                                      { return nil }

func TestReadWrite_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewSubstrate(NewMemory(), FallbackToDefault)

	Write(ctx, s, KeyExpenses, []record{{ID: "e1", Amount: 12.5}})
	got := Read(ctx, s, KeyExpenses, []record{})
	require.Len(t, got, 1)
	assert.Equal(t, "e1", got[0].ID)
	assert.Equal(t, 12.5, got[0].Amount)
	assert.NoError(t, s.LastError())
}

func TestRead_MissingReturnsDefault(t *testing.T) {
	s := NewSubstrate(NewMemory(), FallbackToDefault)
	def := []record{{ID: "default"}}

	got := Read(context.Background(), s, KeyExpenses, def)
	assert.Equal(t, def, got)
	assert.NoError(t, s.LastError(), "a missing key is not a failure")
}

func TestRead_MalformedFallsBack(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	require.NoError(t, mem.Set(ctx, KeyAccounts, "{not json"))
	s := NewSubstrate(mem, FallbackToDefault)

	got := Read(ctx, s, KeyAccounts, []record{})
	assert.Empty(t, got)
	require.Error(t, s.LastError())
	assert.Contains(t, s.LastError().Error(), KeyAccounts)

	_, ok, _ := mem.Get(ctx, QuarantineKey(KeyAccounts))
	assert.False(t, ok, "fallback policy does not quarantine")
}

func TestRead_MalformedQuarantined(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	require.NoError(t, mem.Set(ctx, KeyAccounts, "{not json"))
	s := NewSubstrate(mem, QuarantineCorrupt)

	got := Read(ctx, s, KeyAccounts, []record{})
	assert.Empty(t, got)

	v, ok, err := mem.Get(ctx, QuarantineKey(KeyAccounts))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "{not json", v)
}

func TestBrokenBackendNeverSurfaces(t *testing.T) {
	ctx := context.Background()
	s := NewSubstrate(brokenBackend{}, FallbackToDefault)

	assert.NotPanics(t, func() {
		Write(ctx, s, KeyBudgets, []record{{ID: "b1"}})
	})
	assert.ErrorIs(t, s.LastError(), errBroken)

	s.ResetError()
	assert.NoError(t, s.LastError())

	got := Read(ctx, s, KeyBudgets, []record{{ID: "fallback"}})
	assert.Equal(t, "fallback", got[0].ID)
	assert.ErrorIs(t, s.LastError(), errBroken)

	s.ResetError()
	s.Remove(ctx, KeyBudgets)
	assert.ErrorIs(t, s.LastError(), errBroken)
}

func TestWrite_UnencodableIsSwallowed(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	s := NewSubstrate(mem, FallbackToDefault)

	Write(ctx, s, KeyExpenses, []record{{ID: "nan", Amount: math.NaN()}})
	require.Error(t, s.LastError())

	_, ok, _ := mem.Get(ctx, KeyExpenses)
	assert.False(t, ok, "nothing is written when encoding fails")
}

func TestHeadlessSubstrate(t *testing.T) {
	ctx := context.Background()
	s := NewSubstrate(Headless{}, FallbackToDefault)
	assert.True(t, s.Headless())

	Write(ctx, s, KeyAccounts, []record{{ID: "a1"}})
	got := Read(ctx, s, KeyAccounts, []record{})
	assert.Empty(t, got)
	assert.NoError(t, s.LastError())
}

func TestParseReadPolicy(t *testing.T) {
	tests := []struct {
		in   string
		want ReadPolicy
	}{
		{"", FallbackToDefault},
		{"fallback", FallbackToDefault},
		{"quarantine", QuarantineCorrupt},
	}
	for _, tt := range tests {
		got, err := ParseReadPolicy(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseReadPolicy("strict")
	assert.Error(t, err)
}
