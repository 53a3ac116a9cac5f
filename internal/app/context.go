package app

import (
	"wasmfix/pkg/wasm"
)

// FixtureModule is the name the built-in catalog is instantiated under.
const FixtureModule = "fixtures"

// AppContext carries the shared dependencies of the HTTP harness.
type AppContext struct {
	Runtime *wasm.Runtime
	Invoker *wasm.Invoker
	Env     string
}
