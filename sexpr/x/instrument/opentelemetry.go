// Copyright © 2025 The tinysexpr authors

// Package instrument provides traced wrappers around sexpr readers.
package instrument

import (
	"context"
	"errors"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/shack/tinysexpr/sexpr"
)

type contextKey string

// ContextOpenTelemetryTracerKey looks up a parent tracer name from a context key.
const ContextOpenTelemetryTracerKey contextKey = "otelParentTracer"

const readSpanName = "sexpr/read"

var _ sexpr.Reader = &otelReader{}

type otelReader struct {
	reader  sexpr.Reader
	context context.Context
}

// NewOpenTelemetryReader wraps r so every Read records a span on the tracer
// associated with parentContext.
func NewOpenTelemetryReader(r sexpr.Reader, parentContext context.Context) (sexpr.Reader, error) {
	if parentContext == nil {
		return nil, errors.New("we can only append spans to a context that is linked to opentelemetry")
	}
	return &otelReader{reader: r, context: parentContext}, nil
}

func contextTracer(ctx context.Context) trace.Tracer {
	tracerName, ok := ctx.Value(ContextOpenTelemetryTracerKey).(string)
	if !ok {
		tracerName = "tinysexpr"
	}
	return otel.GetTracerProvider().Tracer(tracerName)
}

func (r *otelReader) Read(name string, reader io.Reader) ([]*sexpr.Value, error) {
	_, span := contextTracer(r.context).Start(r.context, readSpanName)
	defer span.End()
	span.SetAttributes(semconv.CodeFilepath(name))

	vals, err := r.reader.Read(name, reader)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(errorAttributes(err)...)
		return vals, err
	}
	span.SetAttributes(attribute.Int("sexpr.expressions", len(vals)))
	return vals, nil
}

// errorAttributes extracts location and condition attributes from syntax
// errors for span annotation.
func errorAttributes(err error) []attribute.KeyValue {
	syntaxErr := &sexpr.SyntaxError{}
	if !errors.As(err, &syntaxErr) {
		return nil
	}
	attrs := []attribute.KeyValue{
		attribute.String("sexpr.condition", syntaxErr.Condition),
	}
	loc := syntaxErr.Source
	if loc != nil {
		attrs = append(attrs,
			semconv.CodeFilepath(loc.File),
			semconv.CodeLineNumber(loc.Line),
			semconv.CodeColumn(loc.Col),
		)
	}
	return attrs
}
