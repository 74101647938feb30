// Package commands defines the requests view models dispatch through the
// mediator, and the handlers that serve them.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shhac/cogview/internal/domain"
	"github.com/shhac/cogview/internal/mediator"
	"github.com/shhac/cogview/internal/storage"
)

// ExecuteRequest runs a request descriptor against a configured service.
// The response is the raw body text.
type ExecuteRequest struct {
	Request domain.Request
	Config  domain.ServiceConfig
}

// GetServiceConfig returns the active configuration for a service.
// The response is a domain.ServiceConfig with Configured=false when none is set.
type GetServiceConfig struct {
	Service domain.ServiceKind
}

// Executor performs HTTP requests. Satisfied by *rest.Client.
type Executor interface {
	Execute(ctx context.Context, req domain.Request, cfg domain.ServiceConfig) (string, error)
}

// Handlers serves ExecuteRequest and GetServiceConfig.
type Handlers struct {
	executor Executor
	repo     storage.Repository
	logger   *slog.Logger
	now      func() time.Time
}

// NewHandlers creates handlers backed by the executor and repository.
func NewHandlers(executor Executor, repo storage.Repository, logger *slog.Logger) *Handlers {
	return &Handlers{
		executor: executor,
		repo:     repo,
		logger:   logger,
		now:      time.Now,
	}
}

// Register installs the handlers on the mediator.
func (h *Handlers) Register(m *mediator.Mediator) {
	mediator.Register(m, h.ExecuteRequest)
	mediator.Register(m, h.GetServiceConfig)
}

// ExecuteRequest executes the request and records the outcome in history.
// A failure to record history is logged, never returned.
func (h *Handlers) ExecuteRequest(ctx context.Context, cmd ExecuteRequest) (string, error) {
	start := h.now()
	body, err := h.executor.Execute(ctx, cmd.Request, cmd.Config)
	duration := h.now().Sub(start)

	entry := domain.HistoryEntry{
		ID:        uuid.New().String(),
		Timestamp: start,
		Service:   cmd.Request.Service(),
		Method:    cmd.Request.Method,
		Path:      cmd.Request.Path,
		Request:   cmd.Request.Body,
		Response:  body,
		Duration:  duration,
		Status:    "success",
	}
	if err != nil {
		entry.Status = "error"
		entry.Error = err.Error()
	}
	if herr := h.repo.AddHistoryEntry(entry); herr != nil {
		h.logger.Warn("failed to record history", slog.Any("error", herr))
	}

	if err != nil {
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) {
			return "", apiErr
		}
		return "", fmt.Errorf("execute %s %s: %w", cmd.Request.Method, cmd.Request.Path, err)
	}
	return body, nil
}

// GetServiceConfig looks up the active profile for the service.
func (h *Handlers) GetServiceConfig(_ context.Context, q GetServiceConfig) (domain.ServiceConfig, error) {
	profile, err := h.repo.ActiveProfile(q.Service)
	if err != nil {
		return domain.ServiceConfig{}, fmt.Errorf("load active %s profile: %w", q.Service, err)
	}
	if profile == nil {
		return domain.ServiceConfig{}, nil
	}
	return profile.Config(), nil
}
