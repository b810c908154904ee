package mocks

import (
	"agenda/infras/otel"
	"context"
	"sync"
)

// Otel is an in-memory tracer that remembers span names and traced errors.
type Otel struct {
	mu     sync.Mutex
	Spans  []string
	Errors []error
}

func (o *Otel) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	o.mu.Lock()
	o.Spans = append(o.Spans, spanName)
	o.mu.Unlock()

	return ctx, &scope{owner: o}
}

func (o *Otel) Shutdown(context.Context) error {
	return nil
}

func (o *Otel) record(err error) {
	o.mu.Lock()
	o.Errors = append(o.Errors, err)
	o.mu.Unlock()
}

// TracedErrors returns a copy of every error passed to TraceError.
func (o *Otel) TracedErrors() []error {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]error(nil), o.Errors...)
}

func NewOtel() *Otel {
	return &Otel{}
}
