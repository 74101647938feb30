// Package mediator dispatches commands and queries to their registered handlers.
//
// Handlers are registered per request type. Callers send a request value and
// receive the handler's typed response:
//
//	mediator.Register(m, func(ctx context.Context, q GetServiceConfig) (domain.ServiceConfig, error) { ... })
//	cfg, err := mediator.Send[domain.ServiceConfig](ctx, m, GetServiceConfig{Service: domain.ServiceText})
package mediator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	// ErrNoHandler is returned when no handler is registered for a request type.
	ErrNoHandler = errors.New("no handler registered")
	// ErrResponseType is returned when a handler's response type differs from the one requested.
	ErrResponseType = errors.New("handler response type mismatch")
)

// HandlerFunc handles a request of type Req and produces a Res.
type HandlerFunc[Req any, Res any] func(ctx context.Context, req Req) (Res, error)

// Next invokes the remainder of the pipeline.
type Next func(ctx context.Context) (any, error)

// Behavior wraps every dispatch. Behaviors run in registration order, the first
// registered being outermost.
type Behavior func(ctx context.Context, req any, next Next) (any, error)

type handler func(ctx context.Context, req any) (any, error)

// Mediator routes requests to handlers keyed by the request's dynamic type.
type Mediator struct {
	mu        sync.RWMutex
	handlers  map[reflect.Type]handler
	resTypes  map[reflect.Type]reflect.Type
	behaviors []Behavior
}

// New creates an empty Mediator.
func New() *Mediator {
	return &Mediator{
		handlers: make(map[reflect.Type]handler),
		resTypes: make(map[reflect.Type]reflect.Type),
	}
}

// Use appends a behavior to the pipeline.
func (m *Mediator) Use(b Behavior) *Mediator {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.behaviors = append(m.behaviors, b)
	return m
}

// Register installs fn as the handler for requests of type Req, replacing any
// previous registration.
func Register[Req any, Res any](m *Mediator, fn HandlerFunc[Req, Res]) {
	reqType := reflect.TypeFor[Req]()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[reqType] = func(ctx context.Context, req any) (any, error) {
		return fn(ctx, req.(Req))
	}
	m.resTypes[reqType] = reflect.TypeFor[Res]()
}

// Send dispatches req to its handler and returns the typed response.
func Send[Res any](ctx context.Context, m *Mediator, req any) (Res, error) {
	var zero Res

	reqType := reflect.TypeOf(req)

	m.mu.RLock()
	h, ok := m.handlers[reqType]
	resType := m.resTypes[reqType]
	behaviors := m.behaviors
	m.mu.RUnlock()

	if !ok {
		return zero, fmt.Errorf("%w for %v", ErrNoHandler, reqType)
	}
	if want := reflect.TypeFor[Res](); resType != want {
		return zero, fmt.Errorf("%w: %v returns %v, not %v", ErrResponseType, reqType, resType, want)
	}

	next := func(ctx context.Context) (any, error) {
		return h(ctx, req)
	}
	for i := len(behaviors) - 1; i >= 0; i-- {
		b, inner := behaviors[i], next
		next = func(ctx context.Context) (any, error) {
			return b(ctx, req, inner)
		}
	}

	res, err := next(ctx)
	if err != nil {
		return zero, err
	}
	typed, ok := res.(Res)
	if !ok && res != nil {
		return zero, fmt.Errorf("%w: behavior returned %T", ErrResponseType, res)
	}
	return typed, nil
}
