package engine

import (
	"log/slog"

	"github.com/roach88/ntm/internal/ir"
	"github.com/roach88/ntm/internal/machine"
)

// Engine explores every computation branch of a machine up to a step budget.
//
// INVARIANTS:
//   - The table is never modified
//   - Each Run owns its own frontier and visited set
//   - Evaluation is single-threaded and deterministic: branches are expanded
//     in frontier order, moves in registration order
type Engine struct {
	table     *machine.Table
	dedup     bool
	observers []Observer
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithDedup enables or disables the visited set.
//
// Default: enabled. Disabling it never changes the verdict for machines whose
// revisited configurations are true duplicates; it only costs work.
func WithDedup(enabled bool) Option {
	return func(e *Engine) {
		e.dedup = enabled
	}
}

// WithObserver registers an observer that receives every StepReport.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observers = append(e.observers, o)
	}
}

// WithLogger sets the logger for per-round debug output.
// Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an Engine for the given table. A nil table behaves as an empty
// one: every branch dies in the first round.
func New(table *machine.Table, opts ...Option) *Engine {
	e := &Engine{
		table:  table,
		dedup:  true,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Dedup reports whether the visited set is enabled.
func (e *Engine) Dedup() bool { return e.dedup }

// Run simulates the machine on input for at most budget rounds.
//
// Verdict contract: YES iff some round produces an ACCEPT configuration and
// no REJECT configuration; NO on budget exhaustion, branch extinction, or any
// round producing REJECT. Run never fails: every input resolves to a verdict.
func (e *Engine) Run(input []ir.Symbol, budget int) Result {
	frontier := []machine.Configuration{machine.Initial(input)}
	visited := NewVisitedSet()
	steps := NewStepBudget(budget)
	result := Result{Verdict: ir.VerdictNo, Cause: CauseBudgetExhausted}

	e.logger.Debug("run starting",
		"tape_len", len(input),
		"budget", steps.Limit(),
		"dedup", e.dedup,
	)

	for steps.Take() {
		report := StepReport{Step: steps.Used(), Frontier: len(frontier)}
		result.Steps = report.Step
		result.PeakFrontier = max(result.PeakFrontier, len(frontier))

		next := e.expand(frontier, visited, &report)
		result.Explored += report.Kept + report.Pruned
		result.Pruned += report.Pruned

		e.logger.Debug("round expanded",
			"step", report.Step,
			"frontier", report.Frontier,
			"kept", report.Kept,
			"pruned", report.Pruned,
			"dead", report.Dead,
			"accepting", report.Accepting,
			"rejecting", report.Rejecting,
		)
		for _, o := range e.observers {
			o.OnStep(report)
		}

		switch {
		case report.Rejecting > 0:
			result.Verdict, result.Cause = ir.VerdictNo, CauseRejected
		case report.Accepting > 0:
			result.Verdict, result.Cause = ir.VerdictYes, CauseAccepted
		case len(next) == 0:
			result.Verdict, result.Cause = ir.VerdictNo, CauseExtinct
		default:
			frontier = next
			continue
		}
		break
	}

	if e.dedup {
		result.Distinct = visited.Len()
	}

	e.logger.Debug("run finished",
		"verdict", result.Verdict,
		"cause", result.Cause,
		"steps", result.Steps,
		"explored", result.Explored,
		"pruned", result.Pruned,
	)
	return result
}

// expand produces the next frontier from the current one and fills in the
// counters of report.
func (e *Engine) expand(frontier []machine.Configuration, visited *VisitedSet, report *StepReport) []machine.Configuration {
	var next []machine.Configuration
	for _, cfg := range frontier {
		moves := e.table.Lookup(cfg.State(), cfg.Read())
		if len(moves) == 0 {
			report.Dead++
			continue
		}
		for _, m := range moves {
			succ := cfg.Apply(m)
			if e.dedup && !visited.Visit(succ) {
				report.Pruned++
				continue
			}
			next = append(next, succ)
			report.Kept++
			switch succ.State() {
			case ir.StateAccept:
				report.Accepting++
			case ir.StateReject:
				report.Rejecting++
			}
		}
	}
	return next
}
