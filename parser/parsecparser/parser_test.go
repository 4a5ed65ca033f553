// Copyright © 2025 The tinysexpr authors

package parsecparser_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shack/tinysexpr/parser/parsecparser"
	"github.com/shack/tinysexpr/parser/token"
	"github.com/shack/tinysexpr/sexpr"
	"github.com/shack/tinysexpr/sexprtest"
)

func newRunner() *sexprtest.Runner {
	return &sexprtest.Runner{
		NewReader: func() sexpr.Reader { return parsecparser.NewReader(nil) },
		// The combinator grammar reports failures by position rather than by
		// token, so error classification is coarser than the rdparser's.
		StrictConditions: false,
	}
}

func TestParsecReader(t *testing.T) {
	newRunner().RunTestSeq(t, sexprtest.ReaderTestSeq{
		{Name: "flat", Input: `(a b c)`, Want: []string{"(a b c)"}},
		{Name: "nested", Input: `(a b c (123 e f () x))`, Want: []string{"(a b c (123 e f () x))"}},
		{Name: "empty list", Input: `()`, Want: []string{"()"}},
		{Name: "bare atom", Input: `abc`, Want: []string{"abc"}},
		{Name: "multiple expressions", Input: "(a) b (c)", Want: []string{"(a)", "b", "(c)"}},
		{Name: "empty input", Input: ``, Want: []string{}},
		{Name: "string", Input: `"hello world"`, Want: []string{"hello world"}},
		{Name: "escape", Input: `(a "a\nb")`, Want: []string{"(a a\nb)"}},
		{Name: "escaped quote", Input: `"a\"b"`, Want: []string{`a"b`}},
		{Name: "bar atom", Input: `(|a b| c)`, Want: []string{"(a b c)"}},
		{Name: "comments", Input: "; note\n(a ; inline\n b)", Want: []string{"(a b)"}},
		{Name: "unclosed list", Input: `(a b`, ErrCondition: sexpr.UnclosedList},
		{Name: "unterminated string", Input: `"abc`, ErrCondition: sexpr.UnterminatedAtom},
		{Name: "trailing escape", Input: `"ab\`, ErrCondition: sexpr.UnterminatedAtom},
		{Name: "unterminated bar", Input: `|abc`, ErrCondition: sexpr.UnterminatedAtom},
		{Name: "stray close", Input: `)`, ErrCondition: sexpr.UnmatchedCloseParen},
	})
}

func TestParsecReaderConditions(t *testing.T) {
	r := parsecparser.NewReader(nil)

	_, err := r.Read("test", strings.NewReader(`(a (b c)`))
	require.Error(t, err)
	assert.True(t, sexpr.IsCondition(err, sexpr.UnclosedList), "error: %v", err)

	_, err = r.Read("test", strings.NewReader(`(a) )`))
	require.Error(t, err)
	assert.True(t, sexpr.IsCondition(err, sexpr.UnmatchedCloseParen), "error: %v", err)

	for _, input := range []string{`"abc`, `"ab\`, `|abc`} {
		_, err = r.Read("test", strings.NewReader(input))
		require.Error(t, err, "input: %q", input)
		assert.True(t, sexpr.IsCondition(err, sexpr.UnterminatedAtom),
			"input: %q error: %v", input, err)
	}
}

func TestParsecReaderHandler(t *testing.T) {
	handler := func(text string, _ *token.Location) (interface{}, error) {
		if n, err := strconv.Atoi(text); err == nil {
			return n, nil
		}
		return text, nil
	}
	vals, err := parsecparser.NewReader(handler).Read("test", strings.NewReader(`(1 2 three)`))
	require.NoError(t, err)
	require.Len(t, vals, 1)
	require.Equal(t, 3, vals[0].Len())
	assert.Equal(t, 1, vals[0].Cells[0].Val)
	assert.Equal(t, "three", vals[0].Cells[2].Val)
}

func TestParsecParseValues(t *testing.T) {
	vals, n, err := parsecparser.ParseValues("test", []byte(`(a b) (c)`), nil)
	require.NoError(t, err)
	require.Len(t, vals, 2)
	assert.Equal(t, len(`(a b) (c)`), n)
	assert.Equal(t, "(a b)", vals[0].String())
}
