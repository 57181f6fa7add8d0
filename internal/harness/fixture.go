// Package harness runs conformance fixtures through the full lowering
// pipeline and compares the emitted text against golden files.
//
// A fixture is a YAML file holding an inline IR document plus an
// expectation: either golden output (the default) or a lowering error
// code. Golden files live under testdata/golden and are regenerated with
// `go test ./internal/harness -update`.
package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wattle-lang/wattle/internal/frontend"
	"github.com/wattle-lang/wattle/internal/wat"
)

// Fixture defines one conformance case.
type Fixture struct {
	// Name uniquely identifies this fixture and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this fixture exercises.
	Description string `yaml:"description,omitempty"`

	// Module is the inline IR document (same shape the frontend
	// accepts from files).
	Module map[string]any `yaml:"module"`

	// WantError, when set, is the LoweringError code the pipeline must
	// fail with. Error fixtures have no golden file.
	WantError string `yaml:"want_error,omitempty"`
}

// LoadFixture reads a fixture definition from a YAML file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if f.Name == "" {
		return nil, fmt.Errorf("fixture %s: name is required", path)
	}
	if f.Module == nil {
		return nil, fmt.Errorf("fixture %q: module is required", f.Name)
	}
	return &f, nil
}

// Result holds the outcome of running a fixture.
type Result struct {
	ModuleID string
	WAT      string
}

// Run executes a fixture through decode and lowering.
//
// The inline document is re-serialized and pushed through frontend.Decode
// so fixtures exercise schema validation exactly like file input does.
func Run(f *Fixture) (*Result, error) {
	raw, err := yaml.Marshal(f.Module)
	if err != nil {
		return nil, fmt.Errorf("serialize module: %w", err)
	}
	block, err := frontend.Decode(raw)
	if err != nil {
		return nil, err
	}

	moduleID, err := frontend.ModuleID(block)
	if err != nil {
		return nil, err
	}

	text, err := wat.Assemble(block)
	if err != nil {
		return nil, err
	}
	return &Result{ModuleID: moduleID, WAT: text}, nil
}
