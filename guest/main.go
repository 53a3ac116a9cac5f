// Guest source of the fixture module. Build with TinyGo (see Makefile); the
// resulting testfile.wasm exports every fixture under its literal name for
// the host harness to resolve.
package main

import "wasmfix/pkg/fixtures"

//go:wasmexport init
func initFixture() {
	fixtures.Init()
}

//go:wasmexport add_one
func addOne(x int32) int32 {
	return fixtures.AddOne(x)
}

//go:wasmexport multi
func multi(x, y int32) int32 {
	return fixtures.Multi(x, y)
}

//go:wasmexport add_two
func addTwo(x int32) int32 {
	return fixtures.AddTwo(x)
}

//go:wasmexport add_something
func addSomething(x int64) int64 {
	return fixtures.AddSomething(x)
}

//go:wasmexport add_something_32
func addSomething32(x, y int32) int32 {
	return fixtures.AddSomething32(x, y)
}

//go:wasmexport add_eleven
func addEleven(x int32) int32 {
	return fixtures.AddEleven(x)
}

//go:wasmexport no_return
func noReturn(x int32) {
	fixtures.NoReturn(x)
}

//go:wasmexport no_parameters
func noParameters() int32 {
	return fixtures.NoParameters()
}

//go:wasmexport new_function
func newFunction() int32 {
	return fixtures.NewFunction()
}

//go:wasmexport mixed_up
func mixedUp(limit int32) int32 {
	return fixtures.MixedUp(limit)
}

//go:wasmexport mixed_up_2
func mixedUp2(limit, limit2 int32) int32 {
	return fixtures.MixedUp2(limit, limit2)
}

//go:wasmexport mixed_up_3
func mixedUp3(limit, limit2, limit3 int32) int32 {
	return fixtures.MixedUp3(limit, limit2, limit3)
}

//go:wasmexport unse_internal
func unseInternal(p int32) int32 {
	return fixtures.UnseInternal(p)
}

// main is required for the wasip1 target even though it is never used.
func main() {}
