package model

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"fyne.io/fyne/v2/data/binding"

	"github.com/shhac/cogview/internal/commands"
	"github.com/shhac/cogview/internal/domain"
	apperrors "github.com/shhac/cogview/internal/errors"
	"github.com/shhac/cogview/internal/mediator"
)

// FormatAPIError renders an API error for display under the service's name.
func FormatAPIError(service domain.ServiceKind, apiErr *domain.APIError) string {
	return fmt.Sprintf("%s error code %s: \n%s", service.DisplayName(), apiErr.Code, apiErr.Message)
}

// NotConfiguredMessage is shown when no active profile exists for the service.
func NotConfiguredMessage(service domain.ServiceKind) string {
	return service.DisplayName() + " configuration is not set\n"
}

// viewModel holds the state shared by every service view model: the error
// display, a loading flag, and the mediator used to dispatch requests.
type viewModel struct {
	service  domain.ServiceKind
	mediator *mediator.Mediator
	logger   *slog.Logger

	Error   binding.String
	Loading binding.Bool

	busy    atomic.Bool
	mu      sync.Mutex
	lastErr error
}

func newViewModel(service domain.ServiceKind, m *mediator.Mediator, logger *slog.Logger) *viewModel {
	return &viewModel{
		service:  service,
		mediator: m,
		logger:   logger,
		Error:    binding.NewString(),
		Loading:  binding.NewBool(),
	}
}

// LastError returns the error behind the current error message, or nil.
func (vm *viewModel) LastError() error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.lastErr
}

// begin claims the view model for one operation, clearing the previous error
// and setting Loading. It reports false without touching any state when an
// operation is already running; otherwise the returned func must be deferred.
func (vm *viewModel) begin() (func(), bool) {
	if !vm.busy.CompareAndSwap(false, true) {
		vm.logger.Debug("operation already in flight", slog.String("service", string(vm.service)))
		return nil, false
	}
	vm.clearError()
	_ = vm.Loading.Set(true)
	return func() {
		_ = vm.Loading.Set(false)
		vm.busy.Store(false)
	}, true
}

func (vm *viewModel) clearError() {
	vm.mu.Lock()
	vm.lastErr = nil
	vm.mu.Unlock()
	_ = vm.Error.Set("")
}

// fail records err and renders it: API errors as code and message, anything
// else in its default string form.
func (vm *viewModel) fail(err error) {
	vm.mu.Lock()
	vm.lastErr = err
	vm.mu.Unlock()

	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		_ = vm.Error.Set(FormatAPIError(vm.service, apiErr))
		return
	}
	_ = vm.Error.Set(err.Error())
}

// config fetches the active service configuration. It reports false, with the
// error already displayed, when the fetch fails or nothing is configured.
func (vm *viewModel) config(ctx context.Context) (domain.ServiceConfig, bool) {
	cfg, err := mediator.Send[domain.ServiceConfig](ctx, vm.mediator, commands.GetServiceConfig{Service: vm.service})
	if err != nil {
		vm.logger.Error("failed to load service configuration",
			slog.String("service", string(vm.service)),
			slog.Any("error", err))
		vm.fail(err)
		return cfg, false
	}
	if !cfg.Configured {
		vm.mu.Lock()
		vm.lastErr = apperrors.ErrConfigurationNotSet
		vm.mu.Unlock()
		_ = vm.Error.Set(NotConfiguredMessage(vm.service))
		return cfg, false
	}
	return cfg, true
}

// execute dispatches one request. It reports false, with the error already
// displayed, on failure.
func (vm *viewModel) execute(ctx context.Context, req domain.Request, cfg domain.ServiceConfig) (string, bool) {
	body, err := mediator.Send[string](ctx, vm.mediator, commands.ExecuteRequest{Request: req, Config: cfg})
	if err != nil {
		vm.logger.Info("request failed",
			slog.String("method", req.Method),
			slog.String("path", req.Path),
			slog.Any("error", err))
		vm.fail(err)
		return "", false
	}
	return body, true
}
