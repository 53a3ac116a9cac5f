package wasm

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest describes a fixture module artifact: where the binary lives and
// which exports it is expected to provide.
type Manifest struct {
	Name    string       `yaml:"name"`
	Version string       `yaml:"version,omitempty"`
	Binary  string       `yaml:"binary"`
	Exports []ExportSpec `yaml:"exports,omitempty"`
}

// ExportSpec pins down one expected export and its signature. Types are the
// wasm value type names ("i32", "i64").
type ExportSpec struct {
	Name    string   `yaml:"name"`
	Params  []string `yaml:"params,omitempty"`
	Results []string `yaml:"results,omitempty"`
}

// LoadManifest reads and validates a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if m.Name == "" {
		return nil, fmt.Errorf("manifest name is required")
	}
	if m.Binary == "" {
		return nil, fmt.Errorf("manifest binary is required")
	}
	return &m, nil
}

// Check verifies an inspection report against the manifest's export list.
func (m *Manifest) Check(rep *Report) error {
	for _, spec := range m.Exports {
		fr, ok := rep.Function(spec.Name)
		if !ok {
			return fmt.Errorf("manifest export %s missing from module", spec.Name)
		}
		if !equalTypes(fr.Params, spec.Params) || !equalTypes(fr.Results, spec.Results) {
			return fmt.Errorf("manifest export %s has signature (%v) -> (%v), module has (%v) -> (%v)",
				spec.Name, spec.Params, spec.Results, fr.Params, fr.Results)
		}
	}
	return nil
}
