// Copyright © 2025 The tinysexpr authors

// Package parser provides the default s-expression reader.
package parser

import (
	"io"

	"github.com/shack/tinysexpr/parser/rdparser"
	"github.com/shack/tinysexpr/parser/token"
	"github.com/shack/tinysexpr/sexpr"
)

// NewReader returns a new sexpr.Reader.
func NewReader(opts ...rdparser.Option) sexpr.LocationReader {
	return rdparser.NewReader(opts...)
}

// Read reads a single expression from r and returns it.  Reading stops as
// soon as one complete expression has been parsed; trailing input is left
// unread.  Read returns io.EOF when r holds no expression at all.
func Read(name string, r io.Reader, opts ...rdparser.Option) (*sexpr.Value, error) {
	s := token.NewScanner(name, r)
	p := rdparser.New(s, opts...)
	return p.Parse()
}
