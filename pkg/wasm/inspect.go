package wasm

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tetratelabs/wazero/api"

	"wasmfix/pkg/fixtures"
)

// FunctionReport describes one export of an inspected module.
type FunctionReport struct {
	Name    string   `json:"name"`
	Params  []string `json:"params"`
	Results []string `json:"results"`
	Valid   bool     `json:"valid"`
	Reason  string   `json:"reason,omitempty"`
}

// Report is the result of inspecting a compiled module. An export is valid
// when every parameter and result is a 32-bit or 64-bit integer and there is
// at most one result; anything else cannot be driven by an integer-only
// harness.
type Report struct {
	Functions []FunctionReport `json:"functions"`
	HasInit   bool             `json:"has_init"`
}

// Inspect compiles a module binary and reports every exported function with
// its signature and validity.
func (r *Runtime) Inspect(ctx context.Context, wasmBytes []byte) (*Report, error) {
	compiled, err := r.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to compile module for inspection: %w", err)
	}
	defer compiled.Close(ctx)

	report := &Report{}
	for name, def := range compiled.ExportedFunctions() {
		fr := FunctionReport{
			Name:    name,
			Params:  typeNames(def.ParamTypes()),
			Results: typeNames(def.ResultTypes()),
			Valid:   true,
		}
		if reason := validateSignature(def); reason != "" {
			fr.Valid = false
			fr.Reason = reason
		}
		if name == "init" && len(def.ParamTypes()) == 0 && len(def.ResultTypes()) == 0 {
			report.HasInit = true
		}
		report.Functions = append(report.Functions, fr)
	}

	sort.Slice(report.Functions, func(i, j int) bool {
		return report.Functions[i].Name < report.Functions[j].Name
	})
	return report, nil
}

func validateSignature(def api.FunctionDefinition) string {
	for _, t := range def.ParamTypes() {
		if t != api.ValueTypeI32 && t != api.ValueTypeI64 {
			return fmt.Sprintf("unsupported parameter type %s", api.ValueTypeName(t))
		}
	}
	if len(def.ResultTypes()) > 1 {
		return fmt.Sprintf("%d results, at most one supported", len(def.ResultTypes()))
	}
	for _, t := range def.ResultTypes() {
		if t != api.ValueTypeI32 && t != api.ValueTypeI64 {
			return fmt.Sprintf("unsupported result type %s", api.ValueTypeName(t))
		}
	}
	return ""
}

func typeNames(ts []api.ValueType) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = api.ValueTypeName(t)
	}
	return out
}

// Function returns the report entry for a named export.
func (rep *Report) Function(name string) (*FunctionReport, bool) {
	for i := range rep.Functions {
		if rep.Functions[i].Name == name {
			return &rep.Functions[i], true
		}
	}
	return nil, false
}

// CheckCatalog verifies that the inspected module exposes the full fixture
// catalog with matching signatures.
func (rep *Report) CheckCatalog() error {
	var problems []string
	for _, entry := range fixtures.Catalog() {
		fr, ok := rep.Function(entry.Name)
		if !ok {
			problems = append(problems, fmt.Sprintf("missing export %s", entry.Name))
			continue
		}
		want := FunctionReport{Params: typeNames(entry.Params), Results: typeNames(entry.Results)}
		if !equalTypes(fr.Params, want.Params) || !equalTypes(fr.Results, want.Results) {
			problems = append(problems, fmt.Sprintf(
				"signature mismatch for %s: have (%s) -> (%s), want (%s) -> (%s)",
				entry.Name,
				strings.Join(fr.Params, ", "), strings.Join(fr.Results, ", "),
				strings.Join(want.Params, ", "), strings.Join(want.Results, ", ")))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("module does not match fixture catalog: %s", strings.Join(problems, "; "))
	}
	return nil
}

// String renders the report the way a human wants to read it: one export per
// line with signature and validity.
func (rep *Report) String() string {
	var b strings.Builder
	for _, fr := range rep.Functions {
		fmt.Fprintf(&b, "%s(%s)", fr.Name, strings.Join(fr.Params, ", "))
		if len(fr.Results) > 0 {
			fmt.Fprintf(&b, " -> %s", strings.Join(fr.Results, ", "))
		}
		if !fr.Valid {
			fmt.Fprintf(&b, "  [invalid: %s]", fr.Reason)
		}
		b.WriteString("\n")
	}
	if !rep.HasInit {
		b.WriteString("warning: no init() export\n")
	}
	return b.String()
}

func equalTypes(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
