// Copyright © 2025 The tinysexpr authors

package diagnostic

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shack/tinysexpr/parser/token"
	"github.com/shack/tinysexpr/sexpr"
)

// testRenderer returns a Renderer with colors disabled and a fake source reader.
func testRenderer(sources map[string]string) *Renderer {
	return &Renderer{
		Color: ColorNever,
		SourceReader: func(name string) ([]byte, error) {
			s, ok := sources[name]
			if !ok {
				return nil, &fakeErr{name}
			}
			return []byte(s), nil
		},
	}
}

type fakeErr struct{ name string }

func (e *fakeErr) Error() string { return "not found: " + e.name }

func TestRenderError(t *testing.T) {
	r := testRenderer(map[string]string{
		"test.sexpr": `(config (port "80x1))`,
	})

	d := Diagnostic{
		Severity: SeverityError,
		Message:  "unterminated-atom: unterminated atom",
		Spans: []Span{
			{File: "test.sexpr", Line: 1, Col: 15, EndCol: 21, Label: "delimiter is never closed"},
		},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()

	// Verify key structural elements
	assertContains(t, got, "error: unterminated-atom: unterminated atom")
	assertContains(t, got, "--> test.sexpr:1:15")
	assertContains(t, got, `(config (port "80x1))`)
	assertContains(t, got, "^^^^^^^")
	assertContains(t, got, "delimiter is never closed")
}

func TestRenderWarning(t *testing.T) {
	r := testRenderer(map[string]string{
		"test.sexpr": "(host a)\n(host a)",
	})

	d := Diagnostic{
		Severity: SeverityWarning,
		Message:  "repeated key: host",
		Spans: []Span{
			{File: "test.sexpr", Line: 2, Col: 1, EndCol: 8},
		},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	assertContains(t, got, "warning: repeated key: host")
	assertContains(t, got, "--> test.sexpr:2:1")
	assertContains(t, got, "(host a)")
}

func TestRenderNoSource(t *testing.T) {
	r := testRenderer(nil)

	d := Diagnostic{
		Severity: SeverityError,
		Message:  "some error",
		Spans: []Span{
			{File: "missing.sexpr", Line: 5, Col: 3},
		},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	// Degrades to location plus empty gutter when the file can't be read.
	assertContains(t, got, "--> missing.sexpr:5:3")
	assertContains(t, got, "|")
	if strings.Contains(got, "^") {
		t.Errorf("no underline expected without source text: %q", got)
	}
}

func TestRenderNotesWrapped(t *testing.T) {
	r := testRenderer(nil)

	d := Diagnostic{
		Severity: SeverityError,
		Message:  "unclosed-list: unmatched \"(\"",
		Notes: []string{
			strings.Repeat("lists opened near the end of a file are usually missing a closing paren ", 3),
		},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	assertContains(t, got, "= note:")
	for _, line := range strings.Split(got, "\n") {
		if len(line) > noteWrapWidth+12 {
			t.Errorf("over-long note line: %q", line)
		}
	}
}

func TestFromError(t *testing.T) {
	src := &token.Location{File: "conf.sexpr", Pos: 10, Line: 2, Col: 3}
	err := sexpr.ErrorConditionf(sexpr.UnclosedList, src, "unmatched %q", "(")

	d := FromError(err, "check the final expression")
	if d.Severity != SeverityError {
		t.Errorf("severity: %v", d.Severity)
	}
	assertContains(t, d.Message, "unclosed-list")
	if len(d.Spans) != 1 {
		t.Fatalf("spans: %v", d.Spans)
	}
	span := d.Spans[0]
	if span.File != "conf.sexpr" || span.Line != 2 || span.Col != 3 {
		t.Errorf("span: %+v", span)
	}
	if span.Label != sexpr.UnclosedList {
		t.Errorf("label: %q", span.Label)
	}
	if len(d.Notes) != 1 {
		t.Errorf("notes: %v", d.Notes)
	}
}

func TestFromErrorPlain(t *testing.T) {
	d := FromError(&fakeErr{"oops"})
	assertContains(t, d.Message, "not found: oops")
	if len(d.Spans) != 0 {
		t.Errorf("unexpected spans: %v", d.Spans)
	}
}

func assertContains(t *testing.T, s, substr string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("missing %q in output:\n%s", substr, s)
	}
}
