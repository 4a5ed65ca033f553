// Copyright © 2025 The tinysexpr authors

package parser_test

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shack/tinysexpr/parser"
	"github.com/shack/tinysexpr/parser/parsecparser"
	"github.com/shack/tinysexpr/sexpr"
	"github.com/shack/tinysexpr/sexprtest"
)

func TestRead(t *testing.T) {
	v, err := parser.Read("test", strings.NewReader(`(a b (c))`))
	require.NoError(t, err)
	assert.Equal(t, "(a b (c))", v.String())
}

func TestReadStopsAfterExpression(t *testing.T) {
	v, err := parser.Read("test", strings.NewReader(`(a) (b)`))
	require.NoError(t, err)
	assert.Equal(t, "(a)", v.String())
}

func TestReadEmpty(t *testing.T) {
	_, err := parser.Read("test", strings.NewReader("  ; just a comment\n"))
	assert.Equal(t, io.EOF, err)
}

func TestNewReader(t *testing.T) {
	vals, err := parser.NewReader().Read("test", strings.NewReader("(a) b"))
	require.NoError(t, err)
	require.Len(t, vals, 2)
	assert.Equal(t, "(a)", vals[0].String())
	assert.Equal(t, "b", vals[1].String())
}

func TestReadLocation(t *testing.T) {
	vals, err := parser.NewReader().ReadLocation("conf.sexpr", "/srv/conf.sexpr",
		strings.NewReader("(a)"))
	require.NoError(t, err)
	require.Len(t, vals, 1)
	require.NotNil(t, vals[0].Source)
	assert.Equal(t, "conf.sexpr", vals[0].Source.File)
	assert.Equal(t, "/srv/conf.sexpr", vals[0].Source.Path)
}

func TestReadTestdata(t *testing.T) {
	f, err := os.Open("testdata/config.sexpr")
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck // test cleanup

	vals, err := parser.NewReader().Read("config.sexpr", f)
	require.NoError(t, err)
	require.Len(t, vals, 3)
	assert.Equal(t, "server", vals[0].Cells[0].String())
	assert.Equal(t, "logging", vals[1].Cells[0].String())
	assert.Equal(t, "(features a b c (d e (f g)) ())", vals[2].String())
}

func BenchmarkReadRD(b *testing.B) {
	sexprtest.BenchmarkParse("testdata/config.sexpr", func() sexpr.Reader {
		return parser.NewReader()
	})(b)
}

func BenchmarkReadParsec(b *testing.B) {
	sexprtest.BenchmarkParse("testdata/config.sexpr", func() sexpr.Reader {
		return parsecparser.NewReader(nil)
	})(b)
}
