// Copyright © 2025 The tinysexpr authors

package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shack/tinysexpr/sexpr"
)

func TestDefaultSyntaxValid(t *testing.T) {
	require.NoError(t, DefaultSyntax().Validate())
}

func TestSyntaxValidate(t *testing.T) {
	tests := []struct {
		name   string
		syntax *Syntax
	}{
		{"nil syntax", nil},
		{"structural comment", &Syntax{Comment: '('}},
		{"whitespace comment", &Syntax{Comment: ' '}},
		{"missing close", &Syntax{
			Delimiters: map[rune]Delimiter{'"': {}},
			Comment:    ';',
		}},
		{"structural open", &Syntax{
			Delimiters: map[rune]Delimiter{')': {Close: '"'}},
			Comment:    ';',
		}},
		{"whitespace close", &Syntax{
			Delimiters: map[rune]Delimiter{'"': {Close: '\t'}},
			Comment:    ';',
		}},
		{"delimiter shadows comment", &Syntax{
			Delimiters: map[rune]Delimiter{';': {Close: ';'}},
			Comment:    ';',
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.syntax.Validate()
			require.Error(t, err)
			assert.True(t, sexpr.IsCondition(err, sexpr.InvalidDelimiterConfig),
				"unexpected error: %v", err)
		})
	}
}

func TestSyntaxValidateCustom(t *testing.T) {
	syntax := &Syntax{
		Delimiters: map[rune]Delimiter{
			'<': {Close: '>', Escape: '%', Escapes: map[rune]rune{'%': '%', '>': '>'}},
		},
		Comment: '#',
	}
	require.NoError(t, syntax.Validate())
}
