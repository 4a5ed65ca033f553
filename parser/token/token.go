// Copyright © 2025 The tinysexpr authors

package token

import "fmt"

// Source is an abstract stream of tokens which allows one token lookahead.
type Source interface {
	// Token returns the current token.  Token returns nil if Scan has not been
	// called.
	Token() *Token
	// Peek returns the next token in the stream.  At the end of the stream
	// Peek should return a value to indicate the lack of a token (EOF).
	Peek() *Token
	// Scan advances the token stream if possible.  If there are no tokens
	// remaining Scan returns false.
	Scan() bool
}

type Token struct {
	Type Type
	Text string
	// Condition names the syntax error class on ERROR tokens so that the
	// parser can surface typed failures.  It is empty on all other tokens.
	Condition string
	Source    *Location
}

func (tok *Token) String() string {
	if tok.Type == ATOM {
		return fmt.Sprintf("%s(%q)", tok.Type, tok.Text)
	}
	return tok.Type.String()
}

type Type uint

// Type constants used by the tinysexpr lexer/parser.
const (
	INVALID Type = iota
	ERROR
	EOF

	// ATOM text is the finished atom content.  For delimited atoms the
	// delimiters are stripped and escape sequences are decoded.
	ATOM

	COMMENT

	PAREN_L
	PAREN_R

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID: "invalid",
		ERROR:   "error",
		EOF:     "EOF",
		ATOM:    "atom",
		COMMENT: ";",
		PAREN_L: "(",
		PAREN_R: ")",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

type Location struct {
	File string // a name representing the source stream
	Path string // a physical location which may differ from File
	Pos  int
	Line int // line number (starting at 1 when tracked)
	Col  int // line column number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	switch {
	case loc.Pos < 0:
		return loc.File
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}
