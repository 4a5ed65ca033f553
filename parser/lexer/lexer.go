// Copyright © 2025 The tinysexpr authors

// Package lexer turns a character stream into atom and structural tokens.
package lexer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shack/tinysexpr/parser/token"
	"github.com/shack/tinysexpr/sexpr"
)

type Lexer struct {
	scanner *token.Scanner
	syntax  *Syntax
}

// New returns a Lexer reading from s with the default syntax.
func New(s *token.Scanner) *Lexer {
	return NewSyntax(s, DefaultSyntax())
}

// NewSyntax returns a Lexer reading from s with a custom syntax.  The syntax
// is not validated here; callers validate once before lexing begins.
func NewSyntax(s *token.Scanner, syntax *Syntax) *Lexer {
	return &Lexer{
		scanner: s,
		syntax:  syntax,
	}
}

// ReadToken scans the next token from the input.  At the end of the stream it
// returns an EOF token on every call.  Scan failures produce an ERROR token
// whose Condition names the failure class.
func (lex *Lexer) ReadToken() []*token.Token {
	lex.skipWhitespace()
	if !lex.scanner.Accept(acceptAny) {
		if lex.scanner.EOF() {
			return lex.emit(token.EOF, "")
		}
		return lex.scanFailure()
	}
	c := lex.scanner.Rune()
	switch {
	case c == '(':
		return lex.emitText(token.PAREN_L)
	case c == ')':
		return lex.emitText(token.PAREN_R)
	case c == lex.syntax.Comment:
		lex.scanner.AcceptSeq(func(c rune) bool { return c != '\n' })
		return lex.emitText(token.COMMENT)
	default:
		if d, ok := lex.syntax.Delimiters[c]; ok {
			return lex.readDelimited(c, d)
		}
		return lex.readAtom()
	}
}

// readAtom finishes a bare atom whose first rune has been scanned.  The atom
// runs until whitespace, a paren, the comment character, or a delimiter
// opening -- the terminating rune is left for the next token.
func (lex *Lexer) readAtom() []*token.Token {
	lex.scanner.AcceptSeq(func(c rune) bool {
		return !unicode.IsSpace(c) && !lex.terminatesAtom(c)
	})
	return lex.emitText(token.ATOM)
}

func (lex *Lexer) terminatesAtom(c rune) bool {
	if c == '(' || c == ')' || c == lex.syntax.Comment {
		return true
	}
	_, ok := lex.syntax.Delimiters[c]
	return ok
}

// readDelimited finishes a delimited atom whose opening rune has been
// scanned.  The emitted token text is the decoded content between the
// delimiters.  A closing delimiter always ends the atom; the default
// delimiters provide no nesting.
func (lex *Lexer) readDelimited(open rune, d Delimiter) []*token.Token {
	var text strings.Builder
	for {
		if !lex.scanner.Accept(acceptAny) {
			if lex.scanner.EOF() {
				return lex.errorf(sexpr.UnterminatedAtom,
					"unterminated atom: missing closing %q for %q", d.Close, open)
			}
			return lex.scanFailure()
		}
		c := lex.scanner.Rune()
		switch {
		case d.Escape != 0 && c == d.Escape:
			if !lex.scanner.Accept(acceptAny) {
				if lex.scanner.EOF() {
					return lex.errorf(sexpr.UnterminatedAtom,
						"unterminated atom: missing closing %q for %q", d.Close, open)
				}
				return lex.scanFailure()
			}
			e := lex.scanner.Rune()
			decoded, ok := d.Escapes[e]
			if !ok {
				return lex.errorf(sexpr.InvalidEscape, "invalid escape character %q", e)
			}
			text.WriteRune(decoded)
		case c == d.Close:
			return lex.emit(token.ATOM, text.String())
		default:
			text.WriteRune(c)
		}
	}
}

func (lex *Lexer) skipWhitespace() {
	if lex.scanner.AcceptSeqSpace() > 0 {
		lex.scanner.Ignore()
	}
}

// emit returns a token with explicit text, located at the start of the
// scanned region.
func (lex *Lexer) emit(typ token.Type, text string) []*token.Token {
	tok := &token.Token{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}
	lex.scanner.Ignore()
	return []*token.Token{tok}
}

// emitText returns a token whose text is the raw scanned region.
func (lex *Lexer) emitText(typ token.Type) []*token.Token {
	return []*token.Token{lex.scanner.EmitToken(typ)}
}

// errorf returns an ERROR token located at the current scanner position.
func (lex *Lexer) errorf(condition string, format string, v ...interface{}) []*token.Token {
	tok := &token.Token{
		Type:      token.ERROR,
		Text:      fmt.Sprintf(format, v...),
		Condition: condition,
		Source:    lex.scanner.Loc(),
	}
	lex.scanner.Ignore()
	return []*token.Token{tok}
}

func (lex *Lexer) scanFailure() []*token.Token {
	if err := lex.scanner.Err(); err != nil {
		return lex.errorf(sexpr.ScanError, "%s", err)
	}
	return lex.errorf(sexpr.ScanError, "invalid utf-8 sequence in input")
}

func acceptAny(rune) bool { return true }
