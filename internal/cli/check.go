package cli

import (
	"context"
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"wasmfix/pkg/wasm"
)

// HandleCheck inspects a compiled module: lists every export with its
// signature, flags exports an integer-only harness cannot drive, and
// optionally validates a manifest. Exit code 1 on any problem.
//
//	wasmfix check [--json] [--manifest manifest.yaml] <file.wasm>
func HandleCheck(args []string) {
	isJSON := false
	manifestPath := ""
	path := ""

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--json":
			isJSON = true
		case "--manifest":
			i++
			if i >= len(args) {
				usageCheck()
			}
			manifestPath = args[i]
		default:
			path = args[i]
		}
	}
	if path == "" {
		usageCheck()
	}

	wasmBytes, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	rt, err := wasm.NewRuntime(ctx)
	if err != nil {
		fmt.Printf("❌ Failed to create runtime: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close(ctx)

	report, err := rt.Inspect(ctx, wasmBytes)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	var problems []string
	for _, fr := range report.Functions {
		if !fr.Valid {
			problems = append(problems, fmt.Sprintf("%s: %s", fr.Name, fr.Reason))
		}
	}
	if err := report.CheckCatalog(); err != nil {
		problems = append(problems, err.Error())
	}
	if manifestPath != "" {
		manifest, err := wasm.LoadManifest(manifestPath)
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}
		if err := manifest.Check(report); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if isJSON {
		out, _ := json.MarshalIndent(map[string]interface{}{
			"success":  len(problems) == 0,
			"report":   report,
			"problems": problems,
		}, "", "  ")
		fmt.Println(string(out))
	} else {
		fmt.Print(report.String())
		for _, p := range problems {
			fmt.Printf("❌ %s\n", p)
		}
		if len(problems) == 0 {
			fmt.Println("✅ Module matches the fixture catalog")
		}
	}

	if len(problems) > 0 {
		os.Exit(1)
	}
}

func usageCheck() {
	fmt.Println("Usage: wasmfix check [--json] [--manifest manifest.yaml] <file.wasm>")
	os.Exit(1)
}
