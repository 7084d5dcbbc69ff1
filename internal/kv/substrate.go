package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/zeromicro/go-zero/core/logx"
)

// ReadPolicy decides what happens to a stored payload that fails to decode.
type ReadPolicy string

const (
	// FallbackToDefault returns the caller's default and leaves the bad
	// payload in place; the next write overwrites it.
	FallbackToDefault ReadPolicy = "fallback"
	// QuarantineCorrupt also returns the default, but first copies the bad
	// payload to "<key>.corrupt" so it survives the next write.
	QuarantineCorrupt ReadPolicy = "quarantine"
)

// ParseReadPolicy maps a config value to a ReadPolicy. Empty means fallback.
func ParseReadPolicy(s string) (ReadPolicy, error) {
	switch ReadPolicy(s) {
	case "", FallbackToDefault:
		return FallbackToDefault, nil
	case QuarantineCorrupt:
		return QuarantineCorrupt, nil
	}
	return "", fmt.Errorf("unknown read policy %q", s)
}

// QuarantineKey is where QuarantineCorrupt parks an undecodable payload.
func QuarantineKey(key string) string {
	return key + ".corrupt"
}

// Substrate is the typed, failure-tolerant layer over a Backend. Reads and
// writes never return errors; failures are logged and remembered in
// LastError.
type Substrate struct {
	backend Backend
	policy  ReadPolicy

	mu      sync.Mutex
	lastErr error
}

// NewSubstrate wraps backend with the given read policy.
func NewSubstrate(backend Backend, policy ReadPolicy) *Substrate {
	if policy == "" {
		policy = FallbackToDefault
	}
	return &Substrate{backend: backend, policy: policy}
}

// Policy returns the configured read policy.
func (s *Substrate) Policy() ReadPolicy { return s.policy }

// Headless reports whether the substrate discards everything.
func (s *Substrate) Headless() bool {
	_, ok := s.backend.(Headless)
	return ok
}

// LastError returns the most recent swallowed failure, if any.
func (s *Substrate) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ResetError clears LastError.
func (s *Substrate) ResetError() {
	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()
}

// Close releases the backend.
func (s *Substrate) Close() error {
	return s.backend.Close()
}

func (s *Substrate) fail(ctx context.Context, msg, key string, err error) {
	logx.WithContext(ctx).Errorw(msg, logx.Field("key", key), logx.Field("error", err.Error()))
	s.mu.Lock()
	s.lastErr = fmt.Errorf("%s %s: %w", msg, key, err)
	s.mu.Unlock()
}

// Read decodes the JSON value under key into a T. A missing key, a backend
// error or a malformed payload all yield def.
func Read[T any](ctx context.Context, s *Substrate, key string, def T) T {
	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.fail(ctx, "reading", key, err)
		return def
	}
	if !ok {
		return def
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.fail(ctx, "decoding", key, err)
		if s.policy == QuarantineCorrupt {
			if qerr := s.backend.Set(ctx, QuarantineKey(key), raw); qerr != nil {
				s.fail(ctx, "quarantining", key, qerr)
			}
		}
		return def
	}
	return v
}

// Write stores v as JSON under key. Failures are logged, never returned.
func Write(ctx context.Context, s *Substrate, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.fail(ctx, "encoding", key, err)
		return
	}
	if err := s.backend.Set(ctx, key, string(data)); err != nil {
		s.fail(ctx, "writing", key, err)
	}
}

// Remove deletes key. Failures are logged, never returned.
func (s *Substrate) Remove(ctx context.Context, key string) {
	if err := s.backend.Delete(ctx, key); err != nil {
		s.fail(ctx, "removing", key, err)
	}
}
