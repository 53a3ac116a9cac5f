package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"wasmfix/internal/app"
	"wasmfix/pkg/coerce"
	"wasmfix/pkg/fixtures"
	"wasmfix/pkg/wasm"
)

// HandleCall invokes one fixture by name with integer arguments.
//
//	wasmfix call <name> [args...] [--module file.wasm] [--timeout ms]
//
// Without --module the built-in catalog is instantiated as a host module;
// with it, the compiled artifact is loaded and the export resolved there.
func HandleCall(args []string) {
	var (
		name       string
		rawArgs    []string
		modulePath string
		timeoutMS  = 5000
	)

	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--module":
			i++
			if i >= len(args) {
				usageCall()
			}
			modulePath = args[i]
		case args[i] == "--timeout":
			i++
			if i >= len(args) {
				usageCall()
			}
			ms, err := strconv.Atoi(args[i])
			if err != nil || ms <= 0 {
				usageCall()
			}
			timeoutMS = ms
		case strings.HasPrefix(args[i], "--"):
			usageCall()
		case name == "":
			name = args[i]
		default:
			rawArgs = append(rawArgs, args[i])
		}
	}
	if name == "" {
		usageCall()
	}

	entry, ok := fixtures.Lookup(name)
	if !ok {
		fmt.Printf("❌ Unknown function: %s\n", name)
		os.Exit(1)
	}

	loose := make([]interface{}, len(rawArgs))
	for i, a := range rawArgs {
		loose[i] = a
	}
	params, err := coerce.RawParams(entry.Params, loose)
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

	moduleName := app.FixtureModule
	if modulePath != "" {
		if err := rt.LoadModule(ctx, moduleName, modulePath); err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}
	} else if err := rt.InstantiateFixtures(ctx, moduleName); err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	inv := wasm.NewInvoker(rt, moduleName, time.Duration(timeoutMS)*time.Millisecond)
	results, err := inv.Call(ctx, name, params...)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	decoded, err := coerce.DecodeResults(entry.Results, results)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	if len(decoded) == 0 {
		fmt.Printf("✅ %s: (no return value)\n", name)
		return
	}
	out := make([]string, len(decoded))
	for i, v := range decoded {
		out[i] = strconv.FormatInt(v, 10)
	}
	fmt.Printf("✅ %s: %s\n", name, strings.Join(out, ", "))
}

func usageCall() {
	fmt.Println("Usage: wasmfix call <name> [args...] [--module file.wasm] [--timeout ms]")
	os.Exit(1)
}
