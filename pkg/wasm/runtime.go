// Package wasm hosts the fixture module: it loads compiled artifacts with
// wazero, resolves exports by name, and invokes them with raw integer
// arguments the way an external test harness would.
package wasm

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// Runtime manages module instantiation and function invocation.
type Runtime struct {
	runtime wazero.Runtime
	mu      sync.RWMutex
	modules map[string]api.Module
}

// NewRuntime creates a wazero runtime. Close-on-context-done is enabled so a
// context deadline halts guest execution; this is the caller-side answer to
// the non-terminating mixed_up* fixtures.
func NewRuntime(ctx context.Context) (*Runtime, error) {
	r := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig().
		WithCloseOnContextDone(true).
		WithCompilationCache(wazero.NewCompilationCache()))

	// WASI is instantiated up front: TinyGo-built fixture artifacts import it
	// even though the fixtures themselves never touch the system interface.
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to instantiate WASI: %w", err)
	}

	return &Runtime{
		runtime: r,
		modules: make(map[string]api.Module),
	}, nil
}

// LoadModule compiles and instantiates a module from a file.
func (r *Runtime) LoadModule(ctx context.Context, name, wasmPath string) error {
	wasmBytes, err := os.ReadFile(wasmPath)
	if err != nil {
		return fmt.Errorf("failed to read WASM file %s: %w", wasmPath, err)
	}
	if err := r.LoadModuleBytes(ctx, name, wasmBytes); err != nil {
		return err
	}
	slog.Info("WASM module loaded", "name", name, "path", wasmPath)
	return nil
}

// LoadModuleBytes compiles and instantiates a module from its binary.
func (r *Runtime) LoadModuleBytes(ctx context.Context, name string, wasmBytes []byte) error {
	r.mu.RLock()
	_, exists := r.modules[name]
	r.mu.RUnlock()
	if exists {
		return fmt.Errorf("module %s already loaded", name)
	}

	compiled, err := r.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return fmt.Errorf("failed to compile WASM module %s: %w", name, err)
	}

	module, err := r.runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(name))
	if err != nil {
		return fmt.Errorf("failed to instantiate WASM module %s: %w", name, err)
	}

	r.mu.Lock()
	r.modules[name] = module
	r.mu.Unlock()
	return nil
}

// CallFunction calls an exported function from a loaded module. Includes
// panic recovery so a misbehaving module cannot take the host down.
func (r *Runtime) CallFunction(ctx context.Context, moduleName, functionName string, params ...uint64) (results []uint64, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("panic in WASM execution",
				"module", moduleName,
				"function", functionName,
				"panic", rec,
				"stack", string(debug.Stack()),
			)
			err = fmt.Errorf("WASM panic in %s.%s: %v", moduleName, functionName, rec)
		}
	}()

	module, err := r.module(moduleName)
	if err != nil {
		return nil, err
	}

	fn := module.ExportedFunction(functionName)
	if fn == nil {
		return nil, fmt.Errorf("function %s not found in module %s", functionName, moduleName)
	}

	results, err = fn.Call(ctx, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s.%s: %w", moduleName, functionName, err)
	}
	return results, nil
}

// FunctionDefinition returns the signature of a named export, or an error if
// the module or export does not exist.
func (r *Runtime) FunctionDefinition(moduleName, functionName string) (api.FunctionDefinition, error) {
	module, err := r.module(moduleName)
	if err != nil {
		return nil, err
	}
	fn := module.ExportedFunction(functionName)
	if fn == nil {
		return nil, fmt.Errorf("function %s not found in module %s", functionName, moduleName)
	}
	return fn.Definition(), nil
}

func (r *Runtime) module(name string) (api.Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	module, exists := r.modules[name]
	if !exists {
		return nil, fmt.Errorf("module %s not loaded", name)
	}
	return module, nil
}

// UnloadModule unloads a module and frees its resources.
func (r *Runtime) UnloadModule(ctx context.Context, name string) error {
	r.mu.Lock()
	module, exists := r.modules[name]
	if exists {
		delete(r.modules, name)
	}
	r.mu.Unlock()
	if !exists {
		return fmt.Errorf("module %s not loaded", name)
	}

	if err := module.Close(ctx); err != nil {
		return fmt.Errorf("failed to close module %s: %w", name, err)
	}
	slog.Info("WASM module unloaded", "name", name)
	return nil
}

// ListModules returns names of all loaded modules.
func (r *Runtime) ListModules() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	return names
}

// Close closes the runtime and all loaded modules.
func (r *Runtime) Close(ctx context.Context) error {
	for _, name := range r.ListModules() {
		if err := r.UnloadModule(ctx, name); err != nil {
			slog.Error("failed to unload module", "name", name, "error", err)
		}
	}
	if err := r.runtime.Close(ctx); err != nil {
		return fmt.Errorf("failed to close WASM runtime: %w", err)
	}
	return nil
}
