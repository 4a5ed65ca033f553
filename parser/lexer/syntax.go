// Copyright © 2025 The tinysexpr authors

package lexer

import (
	"unicode"

	"github.com/shack/tinysexpr/sexpr"
)

// Delimiter describes one delimited-atom form.  Text between the opening
// character and Close may contain whitespace, parens, and any other character
// that would normally terminate an atom.  When Escape is non-zero the rune
// following it inside the atom is decoded through the Escapes table; a rune
// missing from the table is a syntax error.
type Delimiter struct {
	Close   rune
	Escape  rune // 0 disables escape processing
	Escapes map[rune]rune
}

// Syntax configures the lexer: the recognized atom delimiters and the
// character which starts a line comment.
type Syntax struct {
	Delimiters map[rune]Delimiter
	Comment    rune
}

// DefaultSyntax returns the standard syntax: double quotes delimit string
// atoms with a backslash escape table, vertical bars delimit symbol atoms
// with no escapes, and semicolons start comments.
func DefaultSyntax() *Syntax {
	return &Syntax{
		Delimiters: map[rune]Delimiter{
			'"': {
				Close:  '"',
				Escape: '\\',
				Escapes: map[rune]rune{
					'n':  '\n',
					't':  '\t',
					'r':  '\r',
					'\\': '\\',
					'"':  '"',
				},
			},
			'|': {Close: '|'},
		},
		Comment: ';',
	}
}

// Validate checks the syntax for configuration errors.  It must reject any
// configuration the lexer cannot tokenize unambiguously: delimiters and the
// comment character may not overlap whitespace or parens, delimiters may not
// shadow the comment character, and every delimiter needs a closing rune.
func (s *Syntax) Validate() error {
	if s == nil {
		return sexpr.ErrorConditionf(sexpr.InvalidDelimiterConfig, nil, "nil syntax")
	}
	if structural(s.Comment) {
		return sexpr.ErrorConditionf(sexpr.InvalidDelimiterConfig, nil,
			"comment character %q overlaps whitespace or parens", s.Comment)
	}
	for open, d := range s.Delimiters {
		if d.Close == 0 {
			return sexpr.ErrorConditionf(sexpr.InvalidDelimiterConfig, nil,
				"delimiter %q has no closing character", open)
		}
		for _, c := range []rune{open, d.Close} {
			if structural(c) {
				return sexpr.ErrorConditionf(sexpr.InvalidDelimiterConfig, nil,
					"delimiter %q overlaps whitespace or parens", c)
			}
			if c == s.Comment {
				return sexpr.ErrorConditionf(sexpr.InvalidDelimiterConfig, nil,
					"delimiter %q overlaps the comment character", c)
			}
		}
	}
	return nil
}

// structural reports runes that always have structural meaning to the lexer
// and therefore cannot be reassigned by a Syntax.
func structural(c rune) bool {
	return c == 0 || c == '(' || c == ')' || unicode.IsSpace(c)
}
