package parser

import (
	"errors"
	"fmt"
)

// ParseErrorCode categorizes machine file errors.
type ParseErrorCode string

const (
	// ErrCodeFieldCount indicates a line without exactly five fields.
	ErrCodeFieldCount ParseErrorCode = "E201"

	// ErrCodeSymbol indicates a read or write symbol that is not one character.
	ErrCodeSymbol ParseErrorCode = "E202"

	// ErrCodeDirection indicates a direction other than L, R or S.
	ErrCodeDirection ParseErrorCode = "E203"

	// ErrCodeState indicates an empty state label.
	ErrCodeState ParseErrorCode = "E204"

	// ErrCodeRead indicates the source could not be read.
	ErrCodeRead ParseErrorCode = "E205"
)

// ParseError reports a malformed machine source. A single ParseError aborts
// the whole load; no partially built table is ever returned.
type ParseError struct {
	Code    ParseErrorCode
	Line    int    // 1-based, 0 when not tied to a line
	Text    string // offending line as read
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsParseError returns true if err is (or wraps) a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
