// Copyright © 2025 The tinysexpr authors

/*
Package parsecparser provides an alternative s-expression reader built from
parser combinators.

	expr    := '(' <expr>* ')' | <atom>
	atom    := <string> | <barsym> | <bare>
	string  := '"' (escape | char)* '"'
	barsym  := '|' char* '|'
	bare    := /[^\s();"|]+/

The grammar is fixed to the default syntax; custom delimiter tables require
the rdparser backend.  Atom handlers are supported.
*/
package parsecparser

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	parsec "github.com/prataprc/goparsec"
	"github.com/shack/tinysexpr/parser/lexer"
	"github.com/shack/tinysexpr/parser/token"
	"github.com/shack/tinysexpr/sexpr"
)

// NewReader returns a sexpr.Reader.  A nil handler means atoms are kept as
// their text.
func NewReader(handler sexpr.AtomHandler) sexpr.Reader {
	if handler == nil {
		handler = sexpr.TextHandler
	}
	return &parsecReader{handler: handler}
}

type parsecReader struct {
	handler sexpr.AtomHandler
}

func (p *parsecReader) Read(name string, r io.Reader) ([]*sexpr.Value, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	vals, n, err := ParseValues(name, b, p.handler)
	if err != nil {
		return nil, err
	}
	if n != len(b) {
		return nil, io.ErrUnexpectedEOF
	}
	return vals, nil
}

const (
	nodeInvalid nodeType = iota
	nodeTerm
	nodeList
	nodeListUnmatched
)

var nodeTypeStrings = []string{
	nodeInvalid:       "INVALID",
	nodeTerm:          "TERM",
	nodeList:          "LIST",
	nodeListUnmatched: "LISTOPENUNMATCHED",
}

type nodeType uint

func (t nodeType) String() string {
	if int(t) >= len(nodeTypeStrings) {
		return "INVALID"
	}
	return nodeTypeStrings[t]
}

// ParseValues parses values from text and returns them.  The number of bytes
// read is returned along with any error that was encountered in parsing.
func ParseValues(name string, text []byte, handler sexpr.AtomHandler) ([]*sexpr.Value, int, error) {
	if handler == nil {
		handler = sexpr.TextHandler
	}
	b := &builder{name: name, handler: handler}

	var v []*sexpr.Value
	s := parsec.NewScanner(text)
	parser := newParsecParser(b)
	root, s := parser(s)
	for root != nil {
		val, err := getValue(root)
		if err != nil {
			return nil, s.GetCursor(), err
		}
		if val != nil {
			v = append(v, val)
		}
		root, s = parser(s)
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		rest, _ := s.Match(`.{1,16}`)
		if len(rest) > 15 {
			rest = append(rest[:15:15], []byte("...")...)
		}
		loc := &token.Location{File: name, Pos: s.GetCursor()}
		return v, s.GetCursor(), sexpr.ErrorConditionf(classifyRemainder(rest), loc,
			"unexpected source text possibly starting: %s", rest)
	}
	return v, s.GetCursor(), nil
}

// classifyRemainder maps leftover source text to the error condition the
// rdparser backend would report for the same input.
func classifyRemainder(rest []byte) string {
	c, _ := utf8.DecodeRune(rest)
	switch c {
	case '"', '|':
		return sexpr.UnterminatedAtom
	case ')':
		return sexpr.UnmatchedCloseParen
	default:
		return sexpr.ScanError
	}
}

func getValue(root parsec.ParsecNode) (*sexpr.Value, error) {
	nodes, ok := cleanParsecNodeList([]parsec.ParsecNode{root})
	if len(nodes) == 0 {
		// we can be here if there is only a comment on a line
		return nil, nil
	}
	if !ok {
		return nil, nodes[0].(error)
	}
	val, ok := nodes[0].(*sexpr.Value)
	if !ok {
		return nil, fmt.Errorf("unexpected node type: %T", nodes[0])
	}
	return val, nil
}

type builder struct {
	name    string
	handler sexpr.AtomHandler
}

func newParsecParser(b *builder) parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	comment := parsec.Token(`;([^\n]*[^\s])?`, "COMMENT")
	// The string token only matches closed strings so that an unterminated
	// string is left in the input for classifyRemainder to report.
	stringAtom := parsec.Token(`"(\\.|[^"\\])*"`, "STRING")
	barAtom := parsec.Token(`\|[^|]*\|`, "BARATOM")
	bareAtom := parsec.Token(`[^\s();"|]+`, "ATOM")
	term := parsec.OrdChoice(b.astNode(nodeTerm),
		stringAtom,
		barAtom,
		bareAtom,
	)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	exprList := parsec.Kleene(nil, &expr)
	list := parsec.And(b.astNode(nodeList), openP, exprList, closeP)
	listUnmatched := parsec.And(b.astNode(nodeListUnmatched), openP, exprList, parsec.End())
	expr = parsec.OrdChoice(nil,
		comment,
		term,
		list,
		// Error matching cases come last because they have the lowest
		// precedence.
		listUnmatched,
	)
	return expr
}

func (b *builder) astNode(typ nodeType) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		return b.newAST(typ, nodes)
	}
}

func (b *builder) newAST(typ nodeType, nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes, ok := cleanParsecNodeList(nodes)
	if len(nodes) == 0 {
		return nil
	}
	if !ok {
		// There is an error in the first position.
		return nodes[0]
	}
	switch typ {
	case nodeTerm:
		return b.term(nodes[0])
	case nodeListUnmatched:
		open := nodes[0].(*parsec.Terminal)
		rest := open.GetValue() + stringifyNodes(nodes[1:len(nodes)-1]) // Trim off the End node
		if len(rest) > 10 {
			rest = rest[:10] + "..."
		}
		loc := &token.Location{File: b.name, Pos: int(open.Position)}
		return sexpr.ErrorConditionf(sexpr.UnclosedList, loc,
			"unmatched %q starting: %v", open.GetValue(), rest)
	case nodeList:
		// We don't want terminal parsec nodes '(' and ')'
		open := nodes[0].(*parsec.Terminal)
		list := sexpr.List(make([]*sexpr.Value, 0, len(nodes)-2))
		list.Source = &token.Location{File: b.name, Pos: int(open.Position)}
		for _, c := range nodes {
			switch c := c.(type) {
			case *sexpr.Value:
				list.Cells = append(list.Cells, c)
			}
		}
		if len(list.Cells) == 0 {
			list.Cells = nil
		}
		return list
	default:
		panic(fmt.Sprintf("unknown nodeType: %s (%d)", typ, typ))
	}
}

// term builds an atom value from a terminal node, applying the atom handler.
func (b *builder) term(node parsec.ParsecNode) parsec.ParsecNode {
	switch node := node.(type) {
	case *parsec.Terminal:
		loc := &token.Location{File: b.name, Pos: int(node.Position)}
		switch node.Name {
		case "STRING":
			// The matched value includes the surrounding quotes.
			text, err := decodeDelimited(node.Value, loc)
			if err != nil {
				return err
			}
			return b.atom(text, loc)
		case "BARATOM":
			raw := node.Value
			if len(raw) < 2 {
				return sexpr.ErrorConditionf(sexpr.UnterminatedAtom, loc, "invalid bar atom: %s", raw)
			}
			return b.atom(raw[1:len(raw)-1], loc)
		case "ATOM":
			return b.atom(node.Value, loc)
		}
	}
	return fmt.Errorf("unexpected term node: %v", node)
}

func (b *builder) atom(text string, loc *token.Location) parsec.ParsecNode {
	val, err := b.handler(text, loc)
	if err != nil {
		return err
	}
	atom := sexpr.Atom(text, val)
	atom.Source = loc
	return atom
}

// decodeDelimited strips the surrounding quotes from a matched string token
// and decodes escape sequences with the default delimiter table.
func decodeDelimited(raw string, loc *token.Location) (string, error) {
	d := lexer.DefaultSyntax().Delimiters['"']
	if len(raw) < 2 {
		return "", sexpr.ErrorConditionf(sexpr.UnterminatedAtom, loc, "invalid string atom: %s", raw)
	}
	inner := raw[1 : len(raw)-1]
	var text strings.Builder
	runes := []rune(inner)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c != d.Escape {
			text.WriteRune(c)
			continue
		}
		i++
		if i >= len(runes) {
			return "", sexpr.ErrorConditionf(sexpr.UnterminatedAtom, loc, "trailing escape in string atom")
		}
		decoded, ok := d.Escapes[runes[i]]
		if !ok {
			return "", sexpr.ErrorConditionf(sexpr.InvalidEscape, loc, "invalid escape character %q", runes[i])
		}
		text.WriteRune(decoded)
	}
	return text.String(), nil
}

func stringifyNodes(nodes []parsec.ParsecNode) string {
	var s []string
	for _, node := range nodes {
		switch node := node.(type) {
		case *parsec.Terminal:
			switch node.GetName() {
			case "OPENP", "CLOSEP":
				continue
			}
			s = append(s, node.GetValue())
		case []parsec.ParsecNode:
			s = append(s, "("+stringifyNodes(node)+")")
		case *sexpr.Value:
			s = append(s, node.String())
		default:
			s = append(s, fmt.Sprint(node))
		}
	}
	return strings.Join(s, " ")
}

func cleanParsecNodeList(lis []parsec.ParsecNode) ([]parsec.ParsecNode, bool) {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case *parsec.Terminal:
			if node.Name == "COMMENT" {
				continue
			}
			nodes = append(nodes, node)
		case error:
			nodes = []parsec.ParsecNode{node}
			return nodes, false
		case []parsec.ParsecNode:
			clean, ok := cleanParsecNodeList(node)
			if !ok {
				return clean, false
			}
			nodes = append(nodes, clean...)
		default:
			if node != nil {
				nodes = append(nodes, node)
			}
		}
	}
	return nodes, true
}
