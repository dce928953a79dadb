package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/ntm/internal/engine"
	"github.com/roach88/ntm/internal/ir"
)

// Scenario defines one simulation with its expected outcome.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description,omitempty"`

	// Machine is a path to a machine file (.cue or text format).
	// Relative paths are resolved against the scenario file's directory.
	Machine string `yaml:"machine,omitempty"`

	// Transitions is an inline machine, one text-format line per entry.
	Transitions []string `yaml:"transitions,omitempty"`

	// Tape is the initial tape content.
	Tape string `yaml:"tape"`

	// Budget is the step budget. Required so scenarios never rely on a
	// configured default.
	Budget *int `yaml:"budget"`

	// Dedup toggles the visited set. Defaults to true.
	Dedup *bool `yaml:"dedup,omitempty"`

	// CompareWithoutDedup reruns the scenario with the visited set disabled
	// and requires the same verdict.
	CompareWithoutDedup bool `yaml:"compare_without_dedup,omitempty"`

	// Expect is the expected outcome.
	Expect Expect `yaml:"expect"`

	// source is the file the scenario was loaded from.
	source string
}

// Expect specifies the expected outcome of a scenario.
type Expect struct {
	// Verdict is "YES" or "NO".
	Verdict string `yaml:"verdict"`

	// Cause optionally pins the terminal cause (accepted, rejected,
	// extinct, budget_exhausted).
	Cause string `yaml:"cause,omitempty"`

	// Steps optionally pins the number of rounds taken.
	Steps *int `yaml:"steps,omitempty"`
}

// Source returns the path the scenario was loaded from, if any.
func (s *Scenario) Source() string { return s.source }

// DedupEnabled reports whether the primary run uses the visited set.
func (s *Scenario) DedupEnabled() bool {
	return s.Dedup == nil || *s.Dedup
}

// LoadError reports a scenario file that could not be read or is invalid.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load scenario %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error { return e.Err }

// IsLoadError returns true if err is (or wraps) a LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// LoadScenario reads and parses a scenario YAML file.
// Returns a LoadError if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	scenario.source = path

	// Resolve machine path relative to the scenario file BEFORE checking it exists
	if scenario.Machine != "" && !filepath.IsAbs(scenario.Machine) {
		scenario.Machine = filepath.Join(filepath.Dir(path), scenario.Machine)
	}
	if scenario.Machine != "" {
		if _, err := os.Stat(scenario.Machine); err != nil {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("machine file not found: %s", scenario.Machine)}
		}
	}

	return scenario, nil
}

// ParseScenario decodes and validates scenario YAML. Machine paths are left
// as written.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// LoadDir loads every .yaml and .yml scenario directly inside dir, sorted by
// file name. Subdirectories (such as golden/) are ignored.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scenario directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	slices.Sort(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		if other, dup := seen[s.Name]; dup {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("duplicate scenario name %q (also in %s)", s.Name, other)}
		}
		seen[s.Name] = path
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if strings.ContainsAny(s.Name, `/\`) {
		return fmt.Errorf("name %q must not contain path separators", s.Name)
	}

	switch {
	case s.Machine == "" && len(s.Transitions) == 0:
		return fmt.Errorf("one of machine or transitions is required")
	case s.Machine != "" && len(s.Transitions) > 0:
		return fmt.Errorf("machine and transitions are mutually exclusive")
	}

	if s.Budget == nil {
		return fmt.Errorf("budget is required")
	}
	if *s.Budget < 0 {
		return fmt.Errorf("budget must be non-negative, got %d", *s.Budget)
	}

	if _, err := ir.ParseVerdict(s.Expect.Verdict); err != nil {
		return fmt.Errorf("expect.verdict: %w", err)
	}
	if s.Expect.Cause != "" && !validCause(engine.Cause(s.Expect.Cause)) {
		return fmt.Errorf("expect.cause: unknown cause %q", s.Expect.Cause)
	}
	if s.Expect.Steps != nil && *s.Expect.Steps < 0 {
		return fmt.Errorf("expect.steps must be non-negative, got %d", *s.Expect.Steps)
	}

	return nil
}

func validCause(c engine.Cause) bool {
	switch c {
	case engine.CauseAccepted, engine.CauseRejected, engine.CauseExtinct, engine.CauseBudgetExhausted:
		return true
	}
	return false
}
