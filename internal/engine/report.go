package engine

import "github.com/roach88/ntm/internal/ir"

// Cause explains why a run terminated.
type Cause string

const (
	// CauseAccepted means a round produced ACCEPT and no REJECT.
	CauseAccepted Cause = "accepted"

	// CauseRejected means a round produced REJECT. Reject wins ties with
	// accept in the same round.
	CauseRejected Cause = "rejected"

	// CauseExtinct means every branch died without reaching a terminal state.
	CauseExtinct Cause = "extinct"

	// CauseBudgetExhausted means the step budget ran out.
	CauseBudgetExhausted Cause = "budget_exhausted"
)

// Result summarises a finished run.
type Result struct {
	Verdict ir.Verdict `json:"verdict"`
	Cause   Cause      `json:"cause"`

	// Steps is the number of expansion rounds performed.
	Steps int `json:"steps"`

	// Explored counts every successor produced, including pruned ones.
	Explored int `json:"explored"`

	// Pruned counts successors dropped by the visited set.
	Pruned int `json:"pruned"`

	// Distinct is the size of the visited set at the end of the run.
	// Zero when deduplication is disabled.
	Distinct int `json:"distinct"`

	// PeakFrontier is the largest frontier expanded in any round.
	PeakFrontier int `json:"peak_frontier"`
}

// StepReport describes one expansion round in aggregate.
type StepReport struct {
	// Step is the 1-based round number.
	Step int `json:"step"`

	// Frontier is the number of configurations expanded.
	Frontier int `json:"frontier"`

	// Kept is the number of successors entering the next frontier.
	Kept int `json:"kept"`

	// Pruned is the number of successors dropped as duplicates.
	Pruned int `json:"pruned"`

	// Dead is the number of frontier configurations without moves.
	Dead int `json:"dead"`

	// Accepting and Rejecting count kept successors in ACCEPT and REJECT.
	Accepting int `json:"accepting"`
	Rejecting int `json:"rejecting"`
}

// Observer receives a report after every round, in order.
type Observer interface {
	OnStep(r StepReport)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(r StepReport)

// OnStep calls f(r).
func (f ObserverFunc) OnStep(r StepReport) { f(r) }

// Recorder is an Observer that keeps every report.
type Recorder struct {
	Reports []StepReport
}

// OnStep appends r.
func (r *Recorder) OnStep(report StepReport) {
	r.Reports = append(r.Reports, report)
}
