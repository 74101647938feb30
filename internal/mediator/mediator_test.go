package mediator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shhac/cogview/internal/logging"
)

type echo struct{ Text string }

type length struct{ Text string }

func TestSend(t *testing.T) {
	m := New()
	Register(m, func(_ context.Context, req echo) (string, error) {
		return req.Text, nil
	})
	Register(m, func(_ context.Context, req length) (int, error) {
		return len(req.Text), nil
	})

	s, err := Send[string](context.Background(), m, echo{Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	n, err := Send[int](context.Background(), m, length{Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestSend_NoHandler(t *testing.T) {
	_, err := Send[string](context.Background(), New(), echo{})
	assert.ErrorIs(t, err, ErrNoHandler)
}

func TestSend_ResponseTypeMismatch(t *testing.T) {
	m := New()
	Register(m, func(_ context.Context, req echo) (string, error) { return req.Text, nil })

	_, err := Send[int](context.Background(), m, echo{Text: "x"})
	assert.ErrorIs(t, err, ErrResponseType)
}

func TestSend_HandlerError(t *testing.T) {
	boom := errors.New("boom")
	m := New()
	Register(m, func(_ context.Context, _ echo) (string, error) { return "", boom })

	_, err := Send[string](context.Background(), m, echo{})
	assert.ErrorIs(t, err, boom)
}

func TestSend_BehaviorOrder(t *testing.T) {
	var calls []string
	record := func(name string) Behavior {
		return func(ctx context.Context, req any, next Next) (any, error) {
			calls = append(calls, name+":before")
			res, err := next(ctx)
			calls = append(calls, name+":after")
			return res, err
		}
	}

	m := New().Use(record("outer")).Use(record("inner"))
	Register(m, func(_ context.Context, req echo) (string, error) {
		calls = append(calls, "handler")
		return req.Text, nil
	})

	_, err := Send[string](context.Background(), m, echo{Text: "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer:before", "inner:before", "handler", "inner:after", "outer:after"}, calls)
}

func TestRecoveryBehavior(t *testing.T) {
	m := New().Use(RecoveryBehavior(logging.NewNopLogger()))
	Register(m, func(_ context.Context, _ echo) (string, error) {
		panic("kaboom")
	})

	_, err := Send[string](context.Background(), m, echo{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestLoggingBehavior_PassesThrough(t *testing.T) {
	m := New().Use(LoggingBehavior(logging.NewNopLogger()))
	Register(m, func(_ context.Context, req echo) (string, error) { return req.Text, nil })

	s, err := Send[string](context.Background(), m, echo{Text: "logged"})
	require.NoError(t, err)
	assert.Equal(t, "logged", s)
}
