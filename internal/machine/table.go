package machine

import (
	"slices"

	"github.com/roach88/ntm/internal/ir"
)

type tableKey struct {
	state  ir.State
	symbol ir.Symbol
}

// Table is an immutable mapping from (state, symbol) to the set of possible
// moves.
//
// INVARIANTS:
//   - Duplicate (state, symbol) entries accumulate; nothing is rejected
//   - Moves for a pair keep the order the transitions were registered in
//   - Lookup never exposes internal storage
type Table struct {
	moves       map[tableKey][]ir.Move
	transitions []ir.Transition
}

// NewTable builds a table from an ordered sequence of transitions.
//
// The transitions slice is copied so later mutation by the caller cannot
// change the table.
func NewTable(transitions []ir.Transition) *Table {
	t := &Table{
		moves:       make(map[tableKey][]ir.Move),
		transitions: slices.Clone(transitions),
	}
	for _, tr := range t.transitions {
		k := tableKey{state: tr.From, symbol: tr.Read}
		t.moves[k] = append(t.moves[k], tr.Move())
	}
	return t
}

// Lookup returns the moves registered for (state, symbol) in registration
// order. An empty result means the branch has no valid move and dies; it is
// not an error.
func (t *Table) Lookup(state ir.State, symbol ir.Symbol) []ir.Move {
	if t == nil {
		return nil
	}
	return slices.Clone(t.moves[tableKey{state: state, symbol: symbol}])
}

// Len returns the number of registered transitions.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.transitions)
}

// Transitions returns a copy of the transitions in registration order.
func (t *Table) Transitions() []ir.Transition {
	if t == nil {
		return nil
	}
	return slices.Clone(t.transitions)
}

// States returns every state label mentioned by the table, sorted.
func (t *Table) States() []ir.State {
	if t == nil {
		return nil
	}
	var states []ir.State
	for _, tr := range t.transitions {
		states = append(states, tr.From, tr.To)
	}
	slices.Sort(states)
	return slices.Compact(states)
}

// Alphabet returns every symbol read or written by the table, sorted.
func (t *Table) Alphabet() []ir.Symbol {
	if t == nil {
		return nil
	}
	var symbols []ir.Symbol
	for _, tr := range t.transitions {
		symbols = append(symbols, tr.Read, tr.Write)
	}
	slices.Sort(symbols)
	return slices.Compact(symbols)
}

// Hash returns the content-addressed identity of the table.
func (t *Table) Hash() (string, error) {
	return ir.MachineHash(t.Transitions())
}
