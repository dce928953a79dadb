package machine

import (
	"slices"
	"strings"

	"github.com/roach88/ntm/internal/ir"
)

// Configuration is a single branch's complete state.
//
// The tape is materialised lazily: cells beyond len(tape) are Blank and the
// slice only grows when the head writes at or moves past its end. The zero
// value is an empty tape, head 0, empty state.
type Configuration struct {
	tape  []ir.Symbol
	head  int
	state ir.State
}

// Key is the comparable identity of a Configuration.
// Two configurations are equal iff their materialised tapes, heads and states
// are equal. Trailing blanks are NOT normalised away.
type Key struct {
	tape  string
	head  int
	state ir.State
}

// Initial creates the starting configuration for an input tape.
func Initial(input []ir.Symbol) Configuration {
	return Configuration{
		tape:  slices.Clone(input),
		head:  0,
		state: ir.StateInit,
	}
}

// At builds an arbitrary configuration. A negative head is clamped to 0
// because the tape is left-bounded.
func At(tape []ir.Symbol, head int, state ir.State) Configuration {
	return Configuration{
		tape:  slices.Clone(tape),
		head:  max(head, 0),
		state: state,
	}
}

// State returns the current control state.
func (c Configuration) State() ir.State { return c.state }

// Head returns the head index.
func (c Configuration) Head() int { return c.head }

// Len returns the materialised tape length.
func (c Configuration) Len() int { return len(c.tape) }

// Tape returns a copy of the materialised tape.
func (c Configuration) Tape() []ir.Symbol { return slices.Clone(c.tape) }

// Read returns the symbol under the head, or Blank past the materialised end.
func (c Configuration) Read() ir.Symbol {
	if c.head < len(c.tape) {
		return c.tape[c.head]
	}
	return ir.Blank
}

// Apply produces the successor configuration for a single move:
//  1. the state becomes m.To
//  2. the tape is materialised up to the head if needed
//  3. m.Write is written under the head
//  4. the head moves: L never goes below 0, R extends the tape by one Blank
//     cell when it steps past the end, S stays
//
// The receiver is not modified.
func (c Configuration) Apply(m ir.Move) Configuration {
	size := max(len(c.tape), c.head+1)
	tape := make([]ir.Symbol, len(c.tape), size+1)
	copy(tape, c.tape)
	for len(tape) <= c.head {
		tape = append(tape, ir.Blank)
	}
	tape[c.head] = m.Write

	head := c.head
	switch m.Dir {
	case ir.Left:
		if head > 0 {
			head--
		}
	case ir.Right:
		head++
		if head >= len(tape) {
			tape = append(tape, ir.Blank)
		}
	}

	return Configuration{tape: tape, head: head, state: m.To}
}

// Key returns the identity used for deduplication.
func (c Configuration) Key() Key {
	return Key{tape: ir.TapeString(c.tape), head: c.head, state: c.state}
}

// Equal reports whether two configurations have the same identity.
func (c Configuration) Equal(other Configuration) bool {
	return c.Key() == other.Key()
}

// String renders "state:tape" with the head cell bracketed, e.g.
// "start:0[1]0". A head past the materialised end is shown on a blank.
func (c Configuration) String() string {
	var b strings.Builder
	b.WriteString(string(c.state))
	b.WriteByte(':')
	for i := 0; i < max(len(c.tape), c.head+1); i++ {
		sym := ir.Blank
		if i < len(c.tape) {
			sym = c.tape[i]
		}
		if i == c.head {
			b.WriteByte('[')
			b.WriteRune(rune(sym))
			b.WriteByte(']')
			continue
		}
		b.WriteRune(rune(sym))
	}
	return b.String()
}
