package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/ntm/internal/compiler"
	"github.com/roach88/ntm/internal/engine"
	"github.com/roach88/ntm/internal/ir"
	"github.com/roach88/ntm/internal/machine"
	"github.com/roach88/ntm/internal/parser"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates every expectation matched.
	Pass bool `json:"pass"`

	// Errors contains one message per failed expectation.
	Errors []string `json:"errors,omitempty"`

	// MachineHash identifies the transition table that was run.
	MachineHash string `json:"machine_hash"`

	// Run is the primary engine result.
	Run engine.Result `json:"run"`

	// Trace holds the step reports of the primary run, in order.
	Trace []engine.StepReport `json:"trace"`
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

// Option configures Run.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sends engine debug logs to l. Runs are silent by default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Run executes a scenario and returns the result.
//
// An error is returned only when the scenario cannot be executed (missing
// or malformed machine). Expectation mismatches are reported through
// Result.Pass and Result.Errors.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))} // Suppress logs in tests
	for _, opt := range opts {
		opt(&o)
	}

	table, err := loadTable(scenario)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	hash, err := table.Hash()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: hash machine: %w", scenario.Name, err)
	}

	tape := parser.ParseTape(scenario.Tape)
	budget := *scenario.Budget

	recorder := &engine.Recorder{}
	eng := engine.New(table,
		engine.WithDedup(scenario.DedupEnabled()),
		engine.WithObserver(recorder),
		engine.WithLogger(o.logger),
	)
	run := eng.Run(tape, budget)

	result := &Result{
		Pass:        true,
		MachineHash: hash,
		Run:         run,
		Trace:       recorder.Reports,
	}
	checkExpect(result, scenario.Expect)

	if scenario.CompareWithoutDedup {
		plain := engine.New(table, engine.WithDedup(false), engine.WithLogger(o.logger)).Run(tape, budget)
		if plain.Verdict != run.Verdict {
			result.AddError(fmt.Sprintf("verdict without dedup: got %s, with dedup %s", plain.Verdict, run.Verdict))
		}
	}

	return result, nil
}

// loadTable builds the transition table from the scenario's machine file or
// inline transitions.
func loadTable(s *Scenario) (*machine.Table, error) {
	if s.Machine != "" {
		def, err := compiler.LoadFile(s.Machine)
		if err != nil {
			return nil, err
		}
		return def.Table(), nil
	}

	transitions, err := parser.ParseLines(s.Transitions)
	if err != nil {
		return nil, fmt.Errorf("inline transitions: %w", err)
	}
	return machine.NewTable(transitions), nil
}

func checkExpect(result *Result, want Expect) {
	run := result.Run
	if ir.Verdict(want.Verdict) != run.Verdict {
		result.AddError(fmt.Sprintf("verdict: expected %s, got %s (cause %s)", want.Verdict, run.Verdict, run.Cause))
	}
	if want.Cause != "" && engine.Cause(want.Cause) != run.Cause {
		result.AddError(fmt.Sprintf("cause: expected %s, got %s", want.Cause, run.Cause))
	}
	if want.Steps != nil && *want.Steps != run.Steps {
		result.AddError(fmt.Sprintf("steps: expected %d, got %d", *want.Steps, run.Steps))
	}
}
