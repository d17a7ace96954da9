// v1
// internal/breaker/breaker.go

// Package breaker guards the coordinator transport with a circuit breaker so
// a dead server fails fast instead of stacking timeouts onto every tick.
package breaker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// State is the breaker position.
type State int

const (
	Closed State = iota
	Open
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrOpen is returned while the breaker fast-fails.
var ErrOpen = errors.New("circuit breaker is open; fast-fail")

// Config tunes when the breaker opens and how long it stays open.
type Config struct {
	MaxFailures  int
	ResetTimeout time.Duration
}

// Breaker wraps an operation with closed/open/half-open gating. An optional
// probe runs before the first operation after the reset timeout; a failing
// probe re-opens the breaker without spending the real operation.
type Breaker struct {
	name  string
	cfg   Config
	lg    *slog.Logger
	probe func(ctx context.Context) error

	mu          sync.Mutex
	state       State
	recentFails int
	openedAt    time.Time
}

func New(name string, cfg Config, lg *slog.Logger, probe func(ctx context.Context) error) *Breaker {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 3
	}
	if cfg.ResetTimeout <= 0 {
		cfg.ResetTimeout = 10 * time.Second
	}
	return &Breaker{name: name, cfg: cfg, lg: lg, probe: probe, state: Closed}
}

// Execute runs op under the breaker. While open and inside the reset window
// it returns ErrOpen without calling op.
func (b *Breaker) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	b.mu.Lock()
	state := b.state
	openedAt := b.openedAt
	b.mu.Unlock()

	if state == Open {
		if time.Since(openedAt) < b.cfg.ResetTimeout {
			return ErrOpen
		}
		return b.probeThenOp(ctx, op)
	}

	err := op(ctx)
	if err == nil {
		b.onSuccess()
		return nil
	}
	b.onFailure(err)
	return err
}

func (b *Breaker) probeThenOp(ctx context.Context, op func(ctx context.Context) error) error {
	b.mu.Lock()
	b.state = HalfOpen
	b.mu.Unlock()
	b.lg.Info("breaker probing", "name", b.name)

	if b.probe != nil {
		if err := b.probe(ctx); err != nil {
			b.lg.Warn("breaker probe failed", "name", b.name, "error", err)
			b.reopen()
			return ErrOpen
		}
	}
	if err := op(ctx); err != nil {
		b.lg.Warn("breaker half-open op failed", "name", b.name, "error", err)
		b.reopen()
		return err
	}
	b.onSuccess()
	b.lg.Info("breaker closed after probe", "name", b.name)
	return nil
}

func (b *Breaker) reopen() {
	b.mu.Lock()
	b.state = Open
	b.openedAt = time.Now()
	b.mu.Unlock()
}

func (b *Breaker) onSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = Closed
	b.recentFails = 0
}

func (b *Breaker) onFailure(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.recentFails++
	if b.recentFails >= b.cfg.MaxFailures {
		b.state = Open
		b.openedAt = time.Now()
		b.lg.Error("breaker opened", "name", b.name, "failures", b.recentFails, "error", err)
	}
}

// State returns the current breaker position.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
