// Copyright © 2025 The tinysexpr authors

// Package rdparser implements the primary s-expression reader.  The lexer
// hands it atoms and structural tokens and the parser assembles the value
// tree with an explicit stack of open list frames, so nesting depth is
// bounded by memory rather than by the call stack.
package rdparser

import (
	"io"

	"github.com/shack/tinysexpr/parser/lexer"
	"github.com/shack/tinysexpr/parser/token"
	"github.com/shack/tinysexpr/sexpr"
)

type config struct {
	syntax  *lexer.Syntax
	handler sexpr.AtomHandler
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		syntax:  lexer.DefaultSyntax(),
		handler: sexpr.TextHandler,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Option configures a Parser or Reader.
type Option func(*config)

// WithSyntax overrides the delimiter table and comment character.  The
// syntax is validated before any input is consumed.
func WithSyntax(s *lexer.Syntax) Option {
	return func(cfg *config) {
		cfg.syntax = s
	}
}

// WithAtomHandler overrides the function applied to each finished atom.
func WithAtomHandler(h sexpr.AtomHandler) Option {
	return func(cfg *config) {
		cfg.handler = h
	}
}

type reader struct {
	opts []Option
}

// NewReader returns a sexpr.Reader that reads all expressions from a stream.
func NewReader(opts ...Option) sexpr.LocationReader {
	return &reader{opts: opts}
}

// Read implements sexpr.Reader.
func (rd *reader) Read(name string, r io.Reader) ([]*sexpr.Value, error) {
	s := token.NewScanner(name, r)
	p := New(s, rd.opts...)
	return p.ParseProgram()
}

// ReadLocation implements sexpr.LocationReader.
func (rd *reader) ReadLocation(name string, loc string, r io.Reader) ([]*sexpr.Value, error) {
	s := token.NewScanner(name, r)
	s.SetPath(loc)
	p := New(s, rd.opts...)
	return p.ParseProgram()
}

// Parser reads s-expressions from a token stream.
type Parser struct {
	parsing   bool
	handler   sexpr.AtomHandler
	syntaxErr error
	src       *TokenSource
}

// NewFromSource initializes and returns a Parser that reads tokens from src.
// The WithSyntax option has no effect here; whatever produced src already
// chose its syntax.
func NewFromSource(src *TokenSource, opts ...Option) *Parser {
	cfg := newConfig(opts...)
	return &Parser{
		handler: cfg.handler,
		src:     src,
	}
}

// New initializes and returns a new Parser that reads tokens from scanner.
func New(scanner *token.Scanner, opts ...Option) *Parser {
	cfg := newConfig(opts...)
	p := NewFromSource(NewTokenSource(scanner, cfg.syntax), opts...)
	p.syntaxErr = cfg.syntax.Validate()
	return p
}

// Parse is a generic entry point that is similar to ParseExpression but is
// capable of handling EOF before reading an expression, returning io.EOF.
func (p *Parser) Parse() (*sexpr.Value, error) {
	if p.syntaxErr != nil {
		return nil, p.syntaxErr
	}
	p.ignoreComments()
	if p.src.IsEOF() {
		return nil, io.EOF
	}
	return p.parseExpression()
}

// ParseProgram parses every expression in the stream.
func (p *Parser) ParseProgram() ([]*sexpr.Value, error) {
	var exprs []*sexpr.Value

	for {
		expr, err := p.Parse()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}

	return exprs, nil
}

// ParseExpression parses a single expression.  Unlike Parse, ParseExpression
// requires an expression to be present in the input stream and reports
// unexpected EOF tokens encountered.
func (p *Parser) ParseExpression() (*sexpr.Value, error) {
	if p.syntaxErr != nil {
		return nil, p.syntaxErr
	}
	return p.parseExpression()
}

// frame is a list under construction.  The open token locates the paren that
// produced the frame so unclosed lists can be reported where they begin.
type frame struct {
	open  *token.Token
	cells []*sexpr.Value
}

func (p *Parser) parseExpression() (*sexpr.Value, error) {
	// Flag that we are in the middle of an expression while we finish
	// parsing it so that an Interactive parser can determine what state we
	// are in (and thus imply what the REPL prompt should be).
	if !p.parsing {
		p.parsing = true
		defer func() { p.parsing = false }()
	}

	var stack []*frame
	for {
		p.ignoreComments()
		switch p.PeekType() {
		case token.EOF:
			if len(stack) == 0 {
				return nil, sexpr.ErrorConditionf(sexpr.ScanError, p.PeekLocation(), "unexpected EOF")
			}
			open := stack[len(stack)-1].open
			return nil, sexpr.ErrorConditionf(sexpr.UnclosedList, open.Source, "unmatched %s", open.Text)
		case token.PAREN_L:
			p.src.Scan()
			stack = append(stack, &frame{open: p.src.Token})
		case token.PAREN_R:
			p.src.Scan()
			if len(stack) == 0 {
				return nil, sexpr.ErrorConditionf(sexpr.UnmatchedCloseParen, p.Location(), "unmatched %s", p.TokenText())
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			list := sexpr.List(f.cells)
			list.Source = f.open.Source
			if len(stack) == 0 {
				// The outermost list just closed; the expression is
				// complete and trailing input is left unread.
				return list, nil
			}
			top := stack[len(stack)-1]
			top.cells = append(top.cells, list)
		case token.ATOM:
			p.src.Scan()
			atom, err := p.atom(p.src.Token)
			if err != nil {
				return nil, err
			}
			if len(stack) == 0 {
				// A bare atom is a complete top-level expression.  A close
				// paren directly after it cannot match anything, and unlike
				// trailing text after a closed list it has already been
				// scanned, so report it.
				if p.PeekType() == token.PAREN_R {
					return nil, sexpr.ErrorConditionf(sexpr.UnmatchedCloseParen, p.PeekLocation(),
						"unmatched %s", p.src.Peek().Text)
				}
				return atom, nil
			}
			top := stack[len(stack)-1]
			top.cells = append(top.cells, atom)
		case token.ERROR, token.INVALID:
			p.src.Scan()
			return nil, p.scanError()
		default:
			p.src.Scan()
			return nil, sexpr.ErrorConditionf(sexpr.ScanError, p.Location(), "unexpected token: %v", p.TokenType())
		}
	}
}

// atom applies the atom handler to a finished atom token.  Handler errors
// abort the read and reach the caller unmodified.
func (p *Parser) atom(tok *token.Token) (*sexpr.Value, error) {
	val, err := p.handler(tok.Text, tok.Source)
	if err != nil {
		return nil, err
	}
	atom := sexpr.Atom(tok.Text, val)
	atom.Source = tok.Source
	return atom, nil
}

func (p *Parser) scanError() error {
	tok := p.src.Token
	condition := tok.Condition
	if condition == "" {
		condition = sexpr.ScanError
	}
	return sexpr.ErrorConditionf(condition, tok.Source, "%s", tok.Text)
}

func (p *Parser) ignoreComments() {
	for p.src.AcceptType(token.COMMENT) {
	}
}

func (p *Parser) ReadToken() *token.Token {
	p.src.Scan()
	return p.src.Token
}

func (p *Parser) TokenText() string {
	return p.src.Token.Text
}

func (p *Parser) TokenType() token.Type {
	return p.src.Token.Type
}

func (p *Parser) Location() *token.Location {
	return p.src.Token.Source
}

func (p *Parser) PeekType() token.Type {
	return p.src.Peek().Type
}

func (p *Parser) PeekLocation() *token.Location {
	return p.src.Peek().Source
}
