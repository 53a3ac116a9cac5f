package wasm

import (
	"strings"
	"testing"
)

// floatWasm is a hand-assembled module exporting idf(f32) -> f32, which an
// integer-only harness cannot drive.
var floatWasm = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00, // magic + version
	// type section: (f32)->f32
	0x01, 0x06, 0x01, 0x60, 0x01, 0x7d, 0x01, 0x7d,
	// function section
	0x03, 0x02, 0x01, 0x00,
	// export section: "idf" -> func 0
	0x07, 0x07, 0x01, 0x03, 0x69, 0x64, 0x66, 0x00, 0x00,
	// code section: local.get 0
	0x0a, 0x06, 0x01, 0x04, 0x00, 0x20, 0x00, 0x0b,
}

func TestInspectReportsSignatures(t *testing.T) {
	rt, ctx := newTestRuntime(t)

	report, err := rt.Inspect(ctx, addSpinWasm)
	if err != nil {
		t.Fatalf("Failed to inspect: %v", err)
	}

	add, ok := report.Function("add")
	if !ok {
		t.Fatal("add not reported")
	}
	if !add.Valid {
		t.Errorf("add flagged invalid: %s", add.Reason)
	}
	if len(add.Params) != 2 || add.Params[0] != "i32" || add.Params[1] != "i32" {
		t.Errorf("add params = %v", add.Params)
	}
	if len(add.Results) != 1 || add.Results[0] != "i32" {
		t.Errorf("add results = %v", add.Results)
	}

	spin, ok := report.Function("spin")
	if !ok {
		t.Fatal("spin not reported")
	}
	if !spin.Valid || len(spin.Params) != 0 || len(spin.Results) != 0 {
		t.Errorf("spin report unexpected: %+v", spin)
	}

	if report.HasInit {
		t.Error("HasInit true for module without init")
	}
	if !strings.Contains(report.String(), "no init() export") {
		t.Error("String() missing init warning")
	}
}

func TestInspectFlagsUnsupportedTypes(t *testing.T) {
	rt, ctx := newTestRuntime(t)

	report, err := rt.Inspect(ctx, floatWasm)
	if err != nil {
		t.Fatalf("Failed to inspect: %v", err)
	}

	idf, ok := report.Function("idf")
	if !ok {
		t.Fatal("idf not reported")
	}
	if idf.Valid {
		t.Error("f32 export not flagged invalid")
	}
	if !strings.Contains(idf.Reason, "f32") {
		t.Errorf("reason does not name the offending type: %q", idf.Reason)
	}
}

func TestCheckCatalogRejectsPartialModule(t *testing.T) {
	rt, ctx := newTestRuntime(t)

	report, err := rt.Inspect(ctx, addSpinWasm)
	if err != nil {
		t.Fatalf("Failed to inspect: %v", err)
	}

	err = report.CheckCatalog()
	if err == nil {
		t.Fatal("Expected catalog mismatch for partial module")
	}
	if !strings.Contains(err.Error(), "missing export add_one") {
		t.Errorf("error does not name missing exports: %v", err)
	}
}

func TestInspectRejectsGarbage(t *testing.T) {
	rt, ctx := newTestRuntime(t)
	if _, err := rt.Inspect(ctx, []byte("not a wasm module")); err == nil {
		t.Error("Expected compile error, got nil")
	}
}
