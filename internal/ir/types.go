package ir

import "fmt"

// Symbol is a single tape cell value.
type Symbol rune

// Blank represents every tape position that was never explicitly written.
const Blank Symbol = '0'

// String returns the symbol as a one-character string.
func (s Symbol) String() string {
	return string(rune(s))
}

// State is an opaque control-state label.
type State string

// Reserved control states. Every other label is machine-specific.
const (
	// StateInit is the unique starting control state.
	StateInit State = "start"

	// StateAccept is terminal and means success.
	StateAccept State = "accept"

	// StateReject is terminal and means failure.
	StateReject State = "reject"
)

// IsTerminal reports whether s is ACCEPT or REJECT.
func (s State) IsTerminal() bool {
	return s == StateAccept || s == StateReject
}

// Direction is a head movement.
type Direction byte

const (
	Left  Direction = 'L'
	Right Direction = 'R'
	Stay  Direction = 'S'
)

// String returns the single-letter encoding used by machine files.
func (d Direction) String() string {
	return string(rune(d))
}

// Valid reports whether d is one of L, R, S.
func (d Direction) Valid() bool {
	return d == Left || d == Right || d == Stay
}

// ParseDirection decodes "L", "R" or "S".
func ParseDirection(s string) (Direction, error) {
	if len(s) == 1 {
		if d := Direction(s[0]); d.Valid() {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid direction %q: must be one of L, R, S", s)
}

// Move is one possible action for a (state, symbol) pair.
type Move struct {
	Write Symbol    `json:"write"`
	Dir   Direction `json:"dir"`
	To    State     `json:"to"`
}

// Transition registers a Move for the pair (From, Read).
// Several transitions may share the same pair; that is the source of
// nondeterminism.
type Transition struct {
	From  State     `json:"from"`
	Read  Symbol    `json:"read"`
	To    State     `json:"to"`
	Write Symbol    `json:"write"`
	Dir   Direction `json:"dir"`
}

// Move returns the action part of the transition.
func (t Transition) Move() Move {
	return Move{Write: t.Write, Dir: t.Dir, To: t.To}
}

// String renders the transition in machine file order:
// "from read to write dir".
func (t Transition) String() string {
	return fmt.Sprintf("%s %s %s %s %s", t.From, t.Read, t.To, t.Write, t.Dir)
}

// Verdict is the final result of a simulation run.
type Verdict string

const (
	VerdictYes Verdict = "YES"
	VerdictNo  Verdict = "NO"
)

// ParseVerdict accepts the literal tokens YES and NO.
func ParseVerdict(s string) (Verdict, error) {
	switch Verdict(s) {
	case VerdictYes, VerdictNo:
		return Verdict(s), nil
	}
	return "", fmt.Errorf("invalid verdict %q: must be YES or NO", s)
}

// Tape converts a string into symbols, one per rune.
func Tape(s string) []Symbol {
	tape := make([]Symbol, 0, len(s))
	for _, r := range s {
		tape = append(tape, Symbol(r))
	}
	return tape
}

// TapeString renders symbols back into a string.
func TapeString(tape []Symbol) string {
	runes := make([]rune, len(tape))
	for i, s := range tape {
		runes[i] = rune(s)
	}
	return string(runes)
}
