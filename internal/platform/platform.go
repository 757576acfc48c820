// Package platform provides the interrupt sources polled by the bigint
// kernel. A Processor never blocks on them: it asks InterruptRequested
// between chunks of work and unwinds once the answer is true.
package platform

import (
	"context"
	"sync/atomic"

	"github.com/agbru/bigcalc/internal/bigint"
)

// Verify interface compliance.
var (
	_ bigint.Platform = (*ContextPlatform)(nil)
	_ bigint.Platform = (*FlagPlatform)(nil)
)

// ─────────────────────────────────────────────────────────────────────────────
// Context-backed platform
// ─────────────────────────────────────────────────────────────────────────────

// ContextPlatform requests an interrupt once its context is done, which
// covers both deadlines and explicit cancellation (SIGINT, errgroup abort).
type ContextPlatform struct {
	ctx    context.Context
	polled atomic.Uint64
}

// NewContextPlatform returns a platform bound to ctx.
func NewContextPlatform(ctx context.Context) *ContextPlatform {
	return &ContextPlatform{ctx: ctx}
}

// InterruptRequested reports whether the context is done.
func (p *ContextPlatform) InterruptRequested() bool {
	p.polled.Add(1)
	select {
	case <-p.ctx.Done():
		return true
	default:
		return false
	}
}

// Cause returns the reason the context ended, or nil while it is live.
func (p *ContextPlatform) Cause() error {
	if p.ctx.Err() == nil {
		return nil
	}
	return context.Cause(p.ctx)
}

// Polled returns how many times the kernel asked for an interrupt.
func (p *ContextPlatform) Polled() uint64 { return p.polled.Load() }

// ─────────────────────────────────────────────────────────────────────────────
// Flag-backed platform
// ─────────────────────────────────────────────────────────────────────────────

// FlagPlatform is an interrupt switch that another goroutine flips. One
// instance may be polled by many processors.
type FlagPlatform struct {
	requested atomic.Bool
}

// Interrupt asks every operation polling p to stop. The request is sticky.
func (p *FlagPlatform) Interrupt() { p.requested.Store(true) }

// InterruptRequested reports whether Interrupt was called.
func (p *FlagPlatform) InterruptRequested() bool { return p.requested.Load() }

// InterruptOnDone returns a FlagPlatform that is interrupted when ctx ends,
// and a function that detaches it from ctx.
func InterruptOnDone(ctx context.Context) (*FlagPlatform, func() bool) {
	p := &FlagPlatform{}
	return p, context.AfterFunc(ctx, p.Interrupt)
}
