package otel

import (
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// Scope wraps one span. Every NewScope call must be paired with End.
type Scope interface {
	End()
	TraceError(err error)
	TraceIfError(err error)
	AddEvent(name string)
	SetAttribute(key string, value any)
	SetAttributes(attributes map[string]any)
}

type span struct {
	inner oteltrace.Span
}

func NewScope(inner oteltrace.Span) Scope {
	return &span{inner: inner}
}

func (s *span) End() {
	s.inner.End()
}

func (s *span) TraceError(err error) {
	s.inner.RecordError(err)
	s.inner.SetStatus(codes.Error, err.Error())
}

func (s *span) TraceIfError(err error) {
	if err == nil {
		return
	}

	s.TraceError(err)
}

func (s *span) AddEvent(name string) {
	s.inner.AddEvent(name)
}

func (s *span) SetAttribute(key string, value any) {
	s.inner.SetAttributes(toAttribute(key, value))
}

func (s *span) SetAttributes(attributes map[string]any) {
	kvs := make([]attribute.KeyValue, 0, len(attributes))
	for key, value := range attributes {
		kvs = append(kvs, toAttribute(key, value))
	}

	s.inner.SetAttributes(kvs...)
}

func toAttribute(key string, value any) attribute.KeyValue {
	switch typed := value.(type) {
	case string:
		return attribute.String(key, typed)
	case bool:
		return attribute.Bool(key, typed)
	case int:
		return attribute.Int(key, typed)
	case int64:
		return attribute.Int64(key, typed)
	case float64:
		return attribute.Float64(key, typed)
	case []string:
		return attribute.StringSlice(key, typed)
	case time.Time:
		return attribute.String(key, typed.Format(time.RFC3339))
	case fmt.Stringer:
		return attribute.String(key, typed.String())
	default:
		return attribute.String(key, fmt.Sprintf("%v", typed))
	}
}
