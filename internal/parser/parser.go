// Package parser reads the plain-text machine format and input tapes.
//
// Machine format: one transition per line, fields separated by a single
// space, in the order
//
//	state_from symbol_read state_to symbol_write direction
//
// Blank lines and lines starting with "//" are ignored. direction is one of
// L, R, S. Any malformed line aborts the whole parse.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/roach88/ntm/internal/ir"
)

const (
	fieldCount    = 5
	commentPrefix = "//"
)

// Parse reads transitions from r in registration order.
func Parse(r io.Reader) ([]ir.Transition, error) {
	var transitions []ir.Transition

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}

		t, err := parseLine(line)
		if err != nil {
			err.Line = lineNo
			err.Text = raw
			return nil, err
		}
		transitions = append(transitions, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Code: ErrCodeRead, Message: err.Error()}
	}

	return transitions, nil
}

// ParseString is Parse over an in-memory source.
func ParseString(src string) ([]ir.Transition, error) {
	return Parse(strings.NewReader(src))
}

// ParseLines parses already split lines, as embedded in scenario files.
func ParseLines(lines []string) ([]ir.Transition, error) {
	return ParseString(strings.Join(lines, "\n"))
}

// ParseFile opens and parses a machine file.
func ParseFile(path string) ([]ir.Transition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open machine file: %w", err)
	}
	defer f.Close()

	transitions, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return transitions, nil
}

func parseLine(line string) (ir.Transition, *ParseError) {
	fields := strings.Split(line, " ")
	if len(fields) != fieldCount {
		return ir.Transition{}, &ParseError{
			Code:    ErrCodeFieldCount,
			Message: fmt.Sprintf("expected %d space-separated fields, got %d", fieldCount, len(fields)),
		}
	}

	from, err := parseState(fields[0])
	if err != nil {
		return ir.Transition{}, err
	}
	read, err := parseSymbol(fields[1])
	if err != nil {
		return ir.Transition{}, err
	}
	to, err := parseState(fields[2])
	if err != nil {
		return ir.Transition{}, err
	}
	write, err := parseSymbol(fields[3])
	if err != nil {
		return ir.Transition{}, err
	}
	dir, dirErr := ir.ParseDirection(fields[4])
	if dirErr != nil {
		return ir.Transition{}, &ParseError{Code: ErrCodeDirection, Message: dirErr.Error()}
	}

	return ir.Transition{From: from, Read: read, To: to, Write: write, Dir: dir}, nil
}

func parseState(s string) (ir.State, *ParseError) {
	if s == "" {
		return "", &ParseError{Code: ErrCodeState, Message: "state label is empty"}
	}
	return ir.State(s), nil
}

func parseSymbol(s string) (ir.Symbol, *ParseError) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || r == utf8.RuneError {
		return 0, &ParseError{
			Code:    ErrCodeSymbol,
			Message: fmt.Sprintf("symbol %q must be exactly one character", s),
		}
	}
	return ir.Symbol(r), nil
}
