// Copyright © 2025 The tinysexpr authors

package instrument

import (
	"context"
	"errors"
	"io"

	octrace "go.opencensus.io/trace"

	"github.com/shack/tinysexpr/sexpr"
)

var _ sexpr.Reader = &ocReader{}

type ocReader struct {
	reader  sexpr.Reader
	context context.Context
}

// NewOpenCensusReader wraps r so every Read records an opencensus span under
// parentContext.
func NewOpenCensusReader(r sexpr.Reader, parentContext context.Context) (sexpr.Reader, error) {
	if parentContext == nil {
		return nil, errors.New("we can only append spans to a context that is linked to opencensus")
	}
	return &ocReader{reader: r, context: parentContext}, nil
}

func (r *ocReader) Read(name string, reader io.Reader) ([]*sexpr.Value, error) {
	_, span := octrace.StartSpan(r.context, readSpanName)
	defer span.End()
	span.AddAttributes(octrace.StringAttribute("code.filepath", name))

	vals, err := r.reader.Read(name, reader)
	if err != nil {
		span.SetStatus(octrace.Status{
			Code:    octrace.StatusCodeInvalidArgument,
			Message: err.Error(),
		})
		syntaxErr := &sexpr.SyntaxError{}
		if errors.As(err, &syntaxErr) {
			span.AddAttributes(octrace.StringAttribute("sexpr.condition", syntaxErr.Condition))
			if loc := syntaxErr.Source; loc != nil {
				span.AddAttributes(
					octrace.Int64Attribute("code.lineno", int64(loc.Line)),
					octrace.Int64Attribute("code.column", int64(loc.Col)),
				)
			}
		}
		return vals, err
	}
	span.AddAttributes(octrace.Int64Attribute("sexpr.expressions", int64(len(vals))))
	return vals, nil
}
