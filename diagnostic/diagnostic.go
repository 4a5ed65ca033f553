// Copyright © 2025 The tinysexpr authors

// Package diagnostic provides Rust-style annotated error rendering for CLI
// output.  It is intentionally independent of the sexpr/ package types in
// its core so that it can render any located message, with a small bridge
// for reader syntax errors.
package diagnostic

import (
	"errors"

	"github.com/shack/tinysexpr/sexpr"
)

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Span identifies a region of source code to highlight in the diagnostic.
type Span struct {
	File   string // path for reading source; display name if unreadable
	Line   int    // 1-based line number
	Col    int    // 1-based start column
	EndCol int    // 1-based end column (0 = auto-detect from source)
	Label  string // text shown under the underline
}

// Diagnostic represents a single error, warning, or note with optional
// source annotations and trailing notes.
type Diagnostic struct {
	Severity Severity
	Message  string
	Spans    []Span
	Notes    []string // "= note:" lines
}

// FromError converts err to a Diagnostic for display.  Syntax errors
// contribute their condition and source span; other errors render as a bare
// message.
func FromError(err error, notes ...string) Diagnostic {
	d := Diagnostic{
		Severity: SeverityError,
		Message:  err.Error(),
		Notes:    notes,
	}
	syntaxErr := &sexpr.SyntaxError{}
	if !errors.As(err, &syntaxErr) {
		return d
	}
	d.Message = syntaxErr.Err.Error()
	if syntaxErr.Condition != "" {
		d.Message = syntaxErr.Condition + ": " + d.Message
	}
	src := syntaxErr.Source
	if src == nil || src.Pos < 0 {
		return d
	}
	span := Span{
		File:  src.File,
		Line:  src.Line,
		Col:   src.Col,
		Label: syntaxErr.Condition,
	}
	if src.Path != "" {
		span.File = src.Path
	}
	d.Spans = append(d.Spans, span)
	return d
}
