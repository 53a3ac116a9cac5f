package wasm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wasmfix/pkg/metrics"
)

// ErrCallTimeout is returned when an invocation misses its deadline.
var ErrCallTimeout = errors.New("function call timed out")

// Invoker wraps a Runtime with a per-call deadline and invocation metrics.
// The fixtures are total functions, but the mixed_up* family never terminates
// for positive limits, so every invocation path goes through a timeout.
type Invoker struct {
	Runtime *Runtime
	Module  string

	// Timeout applies when the caller's context has no deadline of its own.
	// Zero means no deadline.
	Timeout time.Duration
}

// NewInvoker creates an invoker bound to one loaded module.
func NewInvoker(rt *Runtime, module string, timeout time.Duration) *Invoker {
	return &Invoker{Runtime: rt, Module: module, Timeout: timeout}
}

type callResult struct {
	results []uint64
	err     error
}

// Call invokes an export by name. Guest code is halted on deadline via the
// runtime's close-on-context-done; a host-module fixture that spins cannot be
// preempted, so on timeout the goroutine is abandoned and the caller gets
// ErrCallTimeout.
func (inv *Invoker) Call(ctx context.Context, function string, params ...uint64) ([]uint64, error) {
	if _, ok := ctx.Deadline(); !ok && inv.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	start := time.Now()
	ch := make(chan callResult, 1)
	go func() {
		results, err := inv.Runtime.CallFunction(ctx, inv.Module, function, params...)
		ch <- callResult{results: results, err: err}
	}()

	select {
	case res := <-ch:
		status := "ok"
		if res.err != nil {
			status = "error"
		}
		metrics.RecordInvocation(function, status, time.Since(start))
		return res.results, res.err
	case <-ctx.Done():
		metrics.RecordInvocation(function, "timeout", time.Since(start))
		return nil, fmt.Errorf("%w: %s.%s", ErrCallTimeout, inv.Module, function)
	}
}
