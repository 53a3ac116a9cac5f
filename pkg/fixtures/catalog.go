package fixtures

import (
	"fmt"

	"github.com/tetratelabs/wazero/api"
)

// Entry describes one fixture export: its literal name, its wasm-level
// signature and a dispatcher over raw stack values. Raw values follow wazero's
// calling convention: every parameter and result travels as a uint64, with
// i32 values encoded via api.EncodeI32.
type Entry struct {
	Name    string
	Params  []api.ValueType
	Results []api.ValueType

	fn func(raw []uint64) []uint64
}

// Call dispatches the entry with raw stack values. The only error condition
// is an arity mismatch; the functions themselves are total (modulo the
// documented mixed_up* non-termination).
func (e *Entry) Call(raw ...uint64) ([]uint64, error) {
	if len(raw) != len(e.Params) {
		return nil, fmt.Errorf("function %s expects %d argument(s), got %d", e.Name, len(e.Params), len(raw))
	}
	return e.fn(raw), nil
}

// Signature renders the entry like "add_one(i32) -> i32".
func (e *Entry) Signature() string {
	return e.Name + "(" + typeList(e.Params) + ")" + resultSuffix(e.Results)
}

func typeList(ts []api.ValueType) string {
	s := ""
	for i, t := range ts {
		if i > 0 {
			s += ", "
		}
		s += api.ValueTypeName(t)
	}
	return s
}

func resultSuffix(ts []api.ValueType) string {
	if len(ts) == 0 {
		return ""
	}
	return " -> " + typeList(ts)
}

var (
	i32 = api.ValueTypeI32
	i64 = api.ValueTypeI64
)

// catalog is fixed at build time. Order matters only for stable listings.
var catalog = []Entry{
	{Name: "init", fn: func(_ []uint64) []uint64 {
		Init()
		return nil
	}},
	{Name: "add_one", Params: []api.ValueType{i32}, Results: []api.ValueType{i32}, fn: func(raw []uint64) []uint64 {
		return []uint64{api.EncodeI32(AddOne(api.DecodeI32(raw[0])))}
	}},
	{Name: "multi", Params: []api.ValueType{i32, i32}, Results: []api.ValueType{i32}, fn: func(raw []uint64) []uint64 {
		return []uint64{api.EncodeI32(Multi(api.DecodeI32(raw[0]), api.DecodeI32(raw[1])))}
	}},
	{Name: "add_two", Params: []api.ValueType{i32}, Results: []api.ValueType{i32}, fn: func(raw []uint64) []uint64 {
		return []uint64{api.EncodeI32(AddTwo(api.DecodeI32(raw[0])))}
	}},
	{Name: "add_something", Params: []api.ValueType{i64}, Results: []api.ValueType{i64}, fn: func(raw []uint64) []uint64 {
		return []uint64{api.EncodeI64(AddSomething(int64(raw[0])))}
	}},
	{Name: "add_something_32", Params: []api.ValueType{i32, i32}, Results: []api.ValueType{i32}, fn: func(raw []uint64) []uint64 {
		return []uint64{api.EncodeI32(AddSomething32(api.DecodeI32(raw[0]), api.DecodeI32(raw[1])))}
	}},
	{Name: "add_eleven", Params: []api.ValueType{i32}, Results: []api.ValueType{i32}, fn: func(raw []uint64) []uint64 {
		return []uint64{api.EncodeI32(AddEleven(api.DecodeI32(raw[0])))}
	}},
	{Name: "no_return", Params: []api.ValueType{i32}, fn: func(raw []uint64) []uint64 {
		NoReturn(api.DecodeI32(raw[0]))
		return nil
	}},
	{Name: "no_parameters", Results: []api.ValueType{i32}, fn: func(_ []uint64) []uint64 {
		return []uint64{api.EncodeI32(NoParameters())}
	}},
	{Name: "new_function", Results: []api.ValueType{i32}, fn: func(_ []uint64) []uint64 {
		return []uint64{api.EncodeI32(NewFunction())}
	}},
	{Name: "mixed_up", Params: []api.ValueType{i32}, Results: []api.ValueType{i32}, fn: func(raw []uint64) []uint64 {
		return []uint64{api.EncodeI32(MixedUp(api.DecodeI32(raw[0])))}
	}},
	{Name: "mixed_up_2", Params: []api.ValueType{i32, i32}, Results: []api.ValueType{i32}, fn: func(raw []uint64) []uint64 {
		return []uint64{api.EncodeI32(MixedUp2(api.DecodeI32(raw[0]), api.DecodeI32(raw[1])))}
	}},
	{Name: "mixed_up_3", Params: []api.ValueType{i32, i32, i32}, Results: []api.ValueType{i32}, fn: func(raw []uint64) []uint64 {
		return []uint64{api.EncodeI32(MixedUp3(api.DecodeI32(raw[0]), api.DecodeI32(raw[1]), api.DecodeI32(raw[2])))}
	}},
	{Name: "unse_internal", Params: []api.ValueType{i32}, Results: []api.ValueType{i32}, fn: func(raw []uint64) []uint64 {
		return []uint64{api.EncodeI32(UnseInternal(api.DecodeI32(raw[0])))}
	}},
}

var byName = func() map[string]*Entry {
	m := make(map[string]*Entry, len(catalog))
	for i := range catalog {
		m[catalog[i].Name] = &catalog[i]
	}
	return m
}()

// Catalog returns the full fixture set in listing order.
func Catalog() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds an entry by its export name.
func Lookup(name string) (*Entry, bool) {
	e, ok := byName[name]
	return e, ok
}
