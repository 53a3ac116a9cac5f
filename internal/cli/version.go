package cli

import "fmt"

// Version is overridden at build time via -ldflags.
var Version = "dev"

func HandleVersion() {
	fmt.Printf("wasmfix %s\n", Version)
}
