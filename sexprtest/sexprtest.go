// Copyright © 2025 The tinysexpr authors

// Package sexprtest provides a shared test harness for reader
// implementations.
package sexprtest

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shack/tinysexpr/sexpr"
)

// BenchmarkParse returns a benchmark that repeatedly reads the source file at
// path with readers produced by r.
func BenchmarkParse(path string, r func() sexpr.Reader) func(*testing.B) {
	return func(b *testing.B) {
		buf, err := os.ReadFile(path) //#nosec G304
		if err != nil {
			b.Fatalf("Unable to read source file %v: %v", path, err)
		}
		b.SetBytes(int64(len(buf)))
		for i := 0; i < b.N; i++ {
			_, err := r().Read("bench", bytes.NewReader(buf))
			if err != nil {
				b.Fatalf("Parse failure: %v", err)
			}
		}
	}
}

// ReaderTest describes one source text and the expressions a reader should
// produce from it.  Want holds the canonical string form of each top-level
// expression.  A non-empty ErrCondition means reading must fail with a
// matching syntax error instead.
type ReaderTest struct {
	Name         string
	Input        string
	Want         []string
	ErrCondition string
}

// ReaderTestSeq is an ordered group of reader tests.
type ReaderTestSeq []ReaderTest

// Runner runs ReaderTest cases against readers produced by NewReader.
type Runner struct {
	// NewReader produces a fresh reader for each test case.
	NewReader func() sexpr.Reader

	// StrictConditions requires failing cases to report the exact error
	// condition named by the test.  Backends that cannot classify every
	// failure leave this false and only the failure itself is checked.
	StrictConditions bool
}

// RunTestSeq runs each test in the sequence as a subtest of t.
func (r *Runner) RunTestSeq(t *testing.T, seq ReaderTestSeq) {
	t.Helper()
	for _, test := range seq {
		test := test
		t.Run(test.Name, func(t *testing.T) {
			r.RunTest(t, &test)
		})
	}
}

// RunTest reads test.Input and checks the result against the expectation.
func (r *Runner) RunTest(t *testing.T, test *ReaderTest) {
	t.Helper()
	reader := r.NewReader()
	vals, err := reader.Read(test.Name, strings.NewReader(test.Input))
	if test.ErrCondition != "" {
		require.Error(t, err, "input: %q", test.Input)
		if r.StrictConditions {
			assert.True(t, sexpr.IsCondition(err, test.ErrCondition),
				"input: %q error: %v want condition: %s", test.Input, err, test.ErrCondition)
		}
		return
	}
	require.NoError(t, err, "input: %q", test.Input)
	got := make([]string, len(vals))
	for i, v := range vals {
		got[i] = v.String()
	}
	assert.Equal(t, test.Want, got, "input: %q", test.Input)
}
