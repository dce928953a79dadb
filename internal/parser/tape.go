package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/roach88/ntm/internal/ir"
)

// ParseTape converts one input line into symbols, one per rune.
// A trailing line terminator is stripped; an empty line is an empty tape.
func ParseTape(line string) []ir.Symbol {
	line = strings.TrimRight(line, "\r\n")
	return ir.Tape(line)
}

// ReadTape reads the first line of r as the input tape.
// Empty input yields an empty tape.
func ReadTape(r io.Reader) ([]ir.Symbol, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read tape: %w", err)
	}
	return ParseTape(line), nil
}
