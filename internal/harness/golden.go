package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/ntm/internal/engine"
	"github.com/roach88/ntm/internal/ir"
)

// GoldenSuffix is appended to scenario names to form golden file names.
const GoldenSuffix = ".golden"

// Snapshot renders a scenario result as canonical JSON for golden comparison.
// The machine hash is included so an edited machine invalidates its goldens.
func Snapshot(name string, result *Result) ([]byte, error) {
	trace := make([]any, len(result.Trace))
	for i, r := range result.Trace {
		trace[i] = reportMap(r)
	}

	run := result.Run
	return ir.MarshalCanonical(map[string]any{
		"scenario_name": name,
		"machine_hash":  result.MachineHash,
		"verdict":       string(run.Verdict),
		"cause":         string(run.Cause),
		"steps":         run.Steps,
		"explored":      run.Explored,
		"pruned":        run.Pruned,
		"distinct":      run.Distinct,
		"peak_frontier": run.PeakFrontier,
		"trace":         trace,
	})
}

func reportMap(r engine.StepReport) map[string]any {
	return map[string]any{
		"step":      r.Step,
		"frontier":  r.Frontier,
		"kept":      r.Kept,
		"pruned":    r.Pruned,
		"dead":      r.Dead,
		"accepting": r.Accepting,
		"rejecting": r.Rejecting,
	}
}

// RunWithGolden executes a scenario and compares the snapshot against a
// golden file stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	snapshot, err := Snapshot(scenario.Name, result)
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(GoldenSuffix),
	)
	g.Assert(t, scenario.Name, snapshot)

	return result, nil
}

// GoldenMismatchError reports a snapshot that differs from its golden file.
type GoldenMismatchError struct {
	Path     string
	Expected []byte
	Actual   []byte
}

func (e *GoldenMismatchError) Error() string {
	return fmt.Sprintf("snapshot differs from %s", e.Path)
}

// CompareGolden compares data with dir/name.golden outside of a test binary.
// With update set the file is (re)written instead. A missing golden file is
// an error unless update is set.
func CompareGolden(dir, name string, data []byte, update bool) error {
	path := filepath.Join(dir, name+GoldenSuffix)

	if update {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create golden directory: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write golden file: %w", err)
		}
		return nil
	}

	expected, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("golden file %s missing (rerun with --update)", path)
	}
	if err != nil {
		return fmt.Errorf("read golden file: %w", err)
	}
	if !bytes.Equal(expected, data) {
		return &GoldenMismatchError{Path: path, Expected: expected, Actual: data}
	}
	return nil
}
