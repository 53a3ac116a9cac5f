package cli

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/tetratelabs/wazero/api"

	"wasmfix/pkg/fixtures"
)

// HandleList prints the fixture catalog, human-readable by default or as JSON
// with --json.
func HandleList(args []string) {
	isJSON := false
	for _, arg := range args {
		if arg == "--json" {
			isJSON = true
		}
	}

	if isJSON {
		type entry struct {
			Name    string   `json:"name"`
			Params  []string `json:"params"`
			Results []string `json:"results"`
		}
		out := make([]entry, 0, len(fixtures.Catalog()))
		for _, e := range fixtures.Catalog() {
			ent := entry{Name: e.Name, Params: []string{}, Results: []string{}}
			for _, p := range e.Params {
				ent.Params = append(ent.Params, api.ValueTypeName(p))
			}
			for _, r := range e.Results {
				ent.Results = append(ent.Results, api.ValueTypeName(r))
			}
			out = append(out, ent)
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			fmt.Printf("❌ Failed to encode catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	for _, e := range fixtures.Catalog() {
		fmt.Println(e.Signature())
	}
}
