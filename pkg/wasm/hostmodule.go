package wasm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tetratelabs/wazero/api"

	"wasmfix/pkg/fixtures"
)

// InstantiateFixtures registers the whole fixture catalog as a host module
// under the given name. Its export surface is identical to the compiled
// fixture artifact, so harness code and guests can resolve the functions by
// name without a build toolchain in the loop.
//
// Host functions run as ordinary Go code: unlike guest code they are not
// halted by context cancellation, so a mixed_up* call with a positive limit
// spins until the process exits. Invoker.Call still returns on deadline.
func (r *Runtime) InstantiateFixtures(ctx context.Context, name string) error {
	r.mu.RLock()
	_, exists := r.modules[name]
	r.mu.RUnlock()
	if exists {
		return fmt.Errorf("module %s already loaded", name)
	}

	builder := r.runtime.NewHostModuleBuilder(name)
	for _, entry := range fixtures.Catalog() {
		entry := entry
		builder.NewFunctionBuilder().
			WithGoFunction(api.GoFunc(func(_ context.Context, stack []uint64) {
				// Arity is enforced by the wasm signature; Call cannot fail here.
				out, _ := entry.Call(stack[:len(entry.Params)]...)
				copy(stack, out)
			}), entry.Params, entry.Results).
			Export(entry.Name)
	}

	module, err := builder.Instantiate(ctx)
	if err != nil {
		return fmt.Errorf("failed to instantiate fixture module %s: %w", name, err)
	}

	r.mu.Lock()
	r.modules[name] = module
	r.mu.Unlock()

	slog.Info("fixture module instantiated", "name", name, "exports", len(fixtures.Catalog()))
	return nil
}
