package mediator

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"
)

// LoggingBehavior logs each dispatch with its request type, duration, and outcome.
func LoggingBehavior(logger *slog.Logger) Behavior {
	return func(ctx context.Context, req any, next Next) (any, error) {
		name := fmt.Sprintf("%T", req)
		start := time.Now()

		res, err := next(ctx)

		duration := time.Since(start)
		if err != nil {
			logger.Debug("request failed",
				slog.String("request", name),
				slog.Duration("duration", duration),
				slog.Any("error", err),
			)
			return res, err
		}
		logger.Debug("request handled",
			slog.String("request", name),
			slog.Duration("duration", duration),
		)
		return res, nil
	}
}

// RecoveryBehavior converts handler panics into errors.
func RecoveryBehavior(logger *slog.Logger) Behavior {
	return func(ctx context.Context, req any, next Next) (res any, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered in handler",
					slog.String("request", fmt.Sprintf("%T", req)),
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())),
				)
				res, err = nil, fmt.Errorf("handler panic: %v", r)
			}
		}()
		return next(ctx)
	}
}
