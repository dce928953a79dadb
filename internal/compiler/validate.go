package compiler

import (
	"fmt"
	"slices"

	"github.com/roach88/ntm/internal/ir"
)

// Lint codes (W300-W399). These never make a machine unrunnable; they flag
// definitions whose behaviour is almost certainly not what was intended.
const (
	WarnNoInitTransition    = "W301" // nothing leaves the start state
	WarnAcceptUnreachable   = "W302" // no transition targets accept
	WarnTerminalTransition  = "W303" // transition out of a terminal state is never taken
	WarnUnreachableState    = "W304" // state cannot be reached from start
	WarnDuplicateTransition = "W305" // identical transition listed twice
)

// ValidationError describes one lint finding.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate lints transitions. Returns every finding (does not fail-fast),
// ordered by code and then by position.
func Validate(transitions []ir.Transition) []ValidationError {
	var errs []ValidationError

	fromInit := false
	reachesAccept := false
	seen := make(map[ir.Transition]int, len(transitions))
	graph := make(map[ir.State][]ir.State)

	for i, t := range transitions {
		field := fmt.Sprintf("transitions[%d]", i)
		if t.From == ir.StateInit {
			fromInit = true
		}
		if t.To == ir.StateAccept {
			reachesAccept = true
		}
		if t.From.IsTerminal() {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%q is terminal; transition %q is never taken", t.From, t),
				Code:    WarnTerminalTransition,
			})
		}
		if first, dup := seen[t]; dup {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("duplicate of transitions[%d]", first),
				Code:    WarnDuplicateTransition,
			})
		} else {
			seen[t] = i
		}
		graph[t.From] = append(graph[t.From], t.To)
	}

	if !fromInit {
		errs = append(errs, ValidationError{
			Field:   "transitions",
			Message: fmt.Sprintf("no transition leaves %q; every run ends extinct", ir.StateInit),
			Code:    WarnNoInitTransition,
		})
	}
	if !reachesAccept {
		errs = append(errs, ValidationError{
			Field:   "transitions",
			Message: fmt.Sprintf("no transition enters %q; the machine can never answer YES", ir.StateAccept),
			Code:    WarnAcceptUnreachable,
		})
	}

	reachable := reachableFrom(graph, ir.StateInit)
	var unreachable []ir.State
	for state := range graph {
		if !reachable[state] {
			unreachable = append(unreachable, state)
		}
	}
	slices.Sort(unreachable)
	for _, state := range unreachable {
		errs = append(errs, ValidationError{
			Field:   "states",
			Message: fmt.Sprintf("state %q is unreachable from %q", state, ir.StateInit),
			Code:    WarnUnreachableState,
		})
	}

	slices.SortStableFunc(errs, func(a, b ValidationError) int {
		if a.Code < b.Code {
			return -1
		}
		if a.Code > b.Code {
			return 1
		}
		return 0
	})
	return errs
}

// reachableFrom walks the state graph ignoring symbols.
func reachableFrom(graph map[ir.State][]ir.State, start ir.State) map[ir.State]bool {
	reached := map[ir.State]bool{start: true}
	stack := []ir.State{start}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range graph[s] {
			if !reached[next] {
				reached[next] = true
				stack = append(stack, next)
			}
		}
	}
	return reached
}
