// Package fixtures is a catalog of trivial arithmetic functions used as test
// input for module-loading harnesses. Every function is pure: no shared state,
// no I/O, no side effects beyond the return value.
package fixtures

// Init performs module setup. It is a no-op, but harnesses expect the export
// to exist and call it before anything else.
func Init() {}

// AddOne returns x+1.
func AddOne(x int32) int32 {
	return x + 1
}

// Multi returns x*y.
func Multi(x, y int32) int32 {
	return x * y
}

// AddTwo returns x+2.
func AddTwo(x int32) int32 {
	return x + 2
}

// AddSomething returns x+11 over 64-bit integers.
func AddSomething(x int64) int64 {
	return x + 11
}

// AddSomething32 returns x+y.
func AddSomething32(x, y int32) int32 {
	return x + y
}

// AddEleven returns x+11.
func AddEleven(x int32) int32 {
	return x + 11
}

// NoReturn computes x+11 and discards it. From the caller's perspective this
// is a no-op; it exists to exercise void-returning exports.
func NoReturn(x int32) {
	_ = x + 11
}

// NoParameters returns the constant 11.
func NoParameters() int32 {
	return 11
}

// NewFunction returns the constant 13.
func NewFunction() int32 {
	return 13
}

// MixedUp loops doubling i until it reaches limit.
//
// WARNING: i starts at 0 and 0*2 is 0, so the loop never progresses. The call
// returns 0 immediately for limit <= 0 and never terminates for limit > 0.
// The behavior is preserved as-is from the reference fixture set; it doubles
// as a test case for caller-side timeouts. See wasm.Invoker.
func MixedUp(limit int32) int32 {
	i := int32(0)
	for i < limit {
		i = i * 2
	}
	return i
}

// MixedUp2 is MixedUp with a second sequential loop multiplying by 3. Same
// non-termination hazard for either positive limit.
func MixedUp2(limit, limit2 int32) int32 {
	i := int32(0)
	for i < limit {
		i = i * 2
	}
	for i < limit2 {
		i = i * 3
	}
	return i
}

// MixedUp3 is MixedUp with three sequential loops multiplying by 2, 3 and 4.
// Same non-termination hazard for any positive limit.
func MixedUp3(limit, limit2, limit3 int32) int32 {
	i := int32(0)
	for i < limit {
		i = i * 2
	}
	for i < limit2 {
		i = i * 3
	}
	for i < limit3 {
		i = i * 4
	}
	return i
}

// UnseInternal chains three other fixtures:
// no_parameters() then add_eleven then add_something_32, so the result is
// 11 + 11 + p = 22 + p.
func UnseInternal(p int32) int32 {
	r := NoParameters()
	r = AddEleven(r)
	r = AddSomething32(r, p)
	return r
}
