// Copyright © 2025 The tinysexpr authors

package sexpr

import (
	"errors"
	"fmt"

	"github.com/shack/tinysexpr/parser/token"
)

// Error conditions reported while reading s-expressions.  Conditions name the
// class of failure so callers can branch without parsing message text.
const (
	// UnterminatedAtom is reported when input ends inside a delimited atom.
	UnterminatedAtom = "unterminated-atom"
	// InvalidEscape is reported when an escape trigger inside a delimited
	// atom is followed by a character missing from the escape table.
	InvalidEscape = "invalid-escape"
	// UnclosedList is reported when input ends while a list is still open.
	UnclosedList = "unclosed-list"
	// UnmatchedCloseParen is reported for a close paren with no open list.
	UnmatchedCloseParen = "unmatched-close-paren"
	// InvalidDelimiterConfig is reported before any input is consumed when
	// the caller-supplied syntax is malformed.
	InvalidDelimiterConfig = "invalid-delimiter-config"
	// ScanError is reported for low level input failures, such as invalid
	// utf-8 sequences.
	ScanError = "scan-error"
)

// SyntaxError is a read failure annotated with a condition name and the
// source location where the failure was detected.  Source is nil for
// configuration errors, which are detected before any input is read.
type SyntaxError struct {
	Condition string
	Source    *token.Location
	Err       error
}

func (e *SyntaxError) Error() string {
	if e.Source == nil {
		return fmt.Sprintf("%s: %s", e.Condition, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Source, e.Condition, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// ErrorConditionf returns a SyntaxError with the given condition and a
// formatted message.
func ErrorConditionf(condition string, src *token.Location, format string, v ...interface{}) *SyntaxError {
	return &SyntaxError{
		Condition: condition,
		Source:    src,
		Err:       fmt.Errorf(format, v...),
	}
}

// IsCondition returns true if err is (or wraps) a SyntaxError with the given
// condition.
func IsCondition(err error, condition string) bool {
	var serr *SyntaxError
	return errors.As(err, &serr) && serr.Condition == condition
}
