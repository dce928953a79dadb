package engine

// StepBudget counts expansion rounds against a fixed limit.
//
// Exhausting the budget is a normal termination cause, not an error: the run
// ends with verdict NO. A negative limit behaves as zero.
type StepBudget struct {
	limit int
	used  int
}

// NewStepBudget creates a budget that allows limit rounds.
func NewStepBudget(limit int) *StepBudget {
	return &StepBudget{limit: max(limit, 0)}
}

// Take consumes one round. It returns false once the budget is exhausted.
func (b *StepBudget) Take() bool {
	if b.used >= b.limit {
		return false
	}
	b.used++
	return true
}

// Used returns the number of rounds consumed so far.
func (b *StepBudget) Used() int { return b.used }

// Limit returns the maximum number of rounds.
func (b *StepBudget) Limit() int { return b.limit }

// Remaining returns the rounds left.
func (b *StepBudget) Remaining() int { return b.limit - b.used }

// Exhausted reports whether no rounds remain.
func (b *StepBudget) Exhausted() bool { return b.used >= b.limit }
