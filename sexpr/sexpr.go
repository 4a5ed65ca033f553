// Copyright © 2025 The tinysexpr authors

// Package sexpr defines the value tree produced by reading an s-expression
// and the narrow interfaces the parser backends implement.
package sexpr

import (
	"fmt"
	"io"
	"strings"

	"github.com/shack/tinysexpr/parser/token"
)

// Type tags a Value as an atom or a list.
type Type uint

const (
	SInvalid Type = iota
	SAtom
	SList

	numValueTypes
)

func (typ Type) String() string {
	typeStrings := [numValueTypes]string{
		SInvalid: "invalid",
		SAtom:    "atom",
		SList:    "list",
	}
	if typ >= numValueTypes {
		return typeStrings[SInvalid]
	}
	return typeStrings[typ]
}

// Value is a node in a parsed s-expression tree.  An atom holds the text the
// lexer produced along with the value the atom handler derived from it.  A
// list holds its elements in source order; the empty list is a list with no
// cells.
type Value struct {
	Type   Type
	Text   string      // atom text after delimiter and escape decoding
	Val    interface{} // atom handler product
	Cells  []*Value    // list elements
	Source *token.Location
}

// Atom returns an atom value holding text and the handler product val.
func Atom(text string, val interface{}) *Value {
	return &Value{Type: SAtom, Text: text, Val: val}
}

// List returns a list value with the given cells.  A nil slice is the empty
// list.
func List(cells []*Value) *Value {
	return &Value{Type: SList, Cells: cells}
}

// IsList returns true if v is a list.
func (v *Value) IsList() bool {
	return v.Type == SList
}

// Len returns the number of elements in a list and -1 for atoms.
func (v *Value) Len() int {
	if v.Type != SList {
		return -1
	}
	return len(v.Cells)
}

// String renders v in parenthesized form.  Atoms render their handler value,
// so the output is a debugging aid and not a faithful serialization of the
// source text.
func (v *Value) String() string {
	var sb strings.Builder
	v.writeTo(&sb)
	return sb.String()
}

func (v *Value) writeTo(sb *strings.Builder) {
	if v == nil {
		return
	}
	switch v.Type {
	case SList:
		sb.WriteRune('(')
		for i, c := range v.Cells {
			if i > 0 {
				sb.WriteRune(' ')
			}
			c.writeTo(sb)
		}
		sb.WriteRune(')')
	default:
		fmt.Fprintf(sb, "%v", v.Val)
	}
}

// AtomHandler transforms the text of a finished atom into the value stored in
// the tree.  The reader calls it exactly once per atom, in source order, and
// stops at the first error, which is returned to the caller unmodified.  The
// location references the first character of the atom.
type AtomHandler func(text string, src *token.Location) (interface{}, error)

// TextHandler is the default atom handler.  It returns the atom text
// unchanged.
func TextHandler(text string, _ *token.Location) (interface{}, error) {
	return text, nil
}

// Reader parses a stream of s-expressions.  The name identifies the stream in
// locations and error messages.
type Reader interface {
	Read(name string, r io.Reader) ([]*Value, error)
}

// LocationReader is a Reader that can associate a physical path with the
// stream, typically so error renderers can load source snippets from disk.
type LocationReader interface {
	Reader
	ReadLocation(name string, loc string, r io.Reader) ([]*Value, error)
}
