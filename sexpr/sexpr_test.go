// Copyright © 2025 The tinysexpr authors

package sexpr

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shack/tinysexpr/parser/token"
)

func TestValueString(t *testing.T) {
	tests := []struct {
		val  *Value
		want string
	}{
		{Atom("a", "a"), "a"},
		{Atom("12", 12), "12"},
		{List(nil), "()"},
		{List([]*Value{Atom("a", "a"), Atom("b", "b")}), "(a b)"},
		{
			List([]*Value{
				Atom("a", "a"),
				List([]*Value{Atom("1", 1), List(nil)}),
				Atom("z", "z"),
			}),
			"(a (1 ()) z)",
		},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, test.val.String())
	}
}

func TestValueLen(t *testing.T) {
	assert.Equal(t, -1, Atom("a", "a").Len())
	assert.Equal(t, 0, List(nil).Len())
	assert.Equal(t, 2, List([]*Value{Atom("a", "a"), Atom("b", "b")}).Len())
	assert.False(t, Atom("a", "a").IsList())
	assert.True(t, List(nil).IsList())
}

func TestTextHandler(t *testing.T) {
	v, err := TextHandler("abc", nil)
	require.NoError(t, err)
	assert.Equal(t, "abc", v)
}

func TestAtomHandlerContract(t *testing.T) {
	// A handler converting numerals demonstrates the Val/Text split.
	handler := AtomHandler(func(text string, _ *token.Location) (interface{}, error) {
		if n, err := strconv.Atoi(text); err == nil {
			return n, nil
		}
		return text, nil
	})
	v, err := handler("42", nil)
	require.NoError(t, err)
	atom := Atom("42", v)
	assert.Equal(t, 42, atom.Val)
	assert.Equal(t, "42", atom.Text)
}

func TestSyntaxError(t *testing.T) {
	loc := &token.Location{File: "test", Pos: 4, Line: 1, Col: 5}
	err := ErrorConditionf(UnclosedList, loc, "unmatched %q", "(")
	assert.Equal(t, `test:1:5: unclosed-list: unmatched "("`, err.Error())
	assert.True(t, IsCondition(err, UnclosedList))
	assert.False(t, IsCondition(err, UnterminatedAtom))

	wrapped := fmt.Errorf("reading config: %w", err)
	assert.True(t, IsCondition(wrapped, UnclosedList))
}

func TestSyntaxErrorNoSource(t *testing.T) {
	err := ErrorConditionf(InvalidDelimiterConfig, nil, "nil syntax")
	assert.Equal(t, "invalid-delimiter-config: nil syntax", err.Error())
	assert.True(t, IsCondition(err, InvalidDelimiterConfig))
	assert.False(t, IsCondition(fmt.Errorf("plain"), InvalidDelimiterConfig))
}
