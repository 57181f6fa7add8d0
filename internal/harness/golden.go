package harness

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/wattle-lang/wattle/internal/wat"
)

// RunWithGolden executes a fixture and checks its expectation.
//
// Success fixtures are compared against testdata/golden/{name}.golden.
// Error fixtures assert the lowering failed with the expected code and
// produced no output. To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, f *Fixture) error {
	t.Helper()

	result, err := Run(f)

	if f.WantError != "" {
		if err == nil {
			return fmt.Errorf("fixture %q: expected error code %s, lowering succeeded", f.Name, f.WantError)
		}
		if result != nil {
			return fmt.Errorf("fixture %q: failed lowering must produce no output, got %q", f.Name, result.WAT)
		}
		var lowErr *wat.LoweringError
		if !errors.As(err, &lowErr) {
			return fmt.Errorf("fixture %q: expected LoweringError, got %v", f.Name, err)
		}
		if string(lowErr.Code) != f.WantError {
			return fmt.Errorf("fixture %q: expected error code %s, got %s", f.Name, f.WantError, lowErr.Code)
		}
		return nil
	}

	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, f.Name, []byte(result.WAT))
	return nil
}
