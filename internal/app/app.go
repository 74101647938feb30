package app

import (
	"context"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"

	"github.com/shhac/cogview/internal/commands"
	"github.com/shhac/cogview/internal/domain"
	"github.com/shhac/cogview/internal/logging"
	"github.com/shhac/cogview/internal/mediator"
	"github.com/shhac/cogview/internal/model"
	"github.com/shhac/cogview/internal/requests"
	"github.com/shhac/cogview/internal/rest"
	"github.com/shhac/cogview/internal/storage"
)

// historyLimit caps how many entries the History tab shows.
const historyLimit = 50

// App is the main application coordinator, responsible for wiring
// together all components and managing their lifecycle.
type App struct {
	fyneApp  fyne.App
	window   fyne.Window
	config   *Config
	logger   *slog.Logger
	storage  storage.Repository
	client   *rest.Client
	mediator *mediator.Mediator
	state    *model.ApplicationState
	metrics  *metricsServer
}

// New creates a new App instance with the given configuration.
// This performs all dependency injection and wiring.
func New(fyneApp fyne.App, cfg *Config) (*App, error) {
	logger, err := logging.InitLogger("cogview", cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("initializing Cogview application",
		slog.Bool("debug", cfg.Debug),
		slog.String("storage_path", cfg.StoragePath),
	)

	storagePath, err := cfg.ResolveStoragePath()
	if err != nil {
		return nil, err
	}

	a := newApp(fyneApp, cfg, logger, storage.NewFileRepository(storagePath, logger), rest.NewClient(logger))
	if cfg.MetricsAddr != "" {
		if a.metrics, err = startMetricsServer(cfg.MetricsAddr, logger); err != nil {
			return nil, err
		}
	}
	a.RefreshActiveProfiles()
	a.RefreshHistory()

	logger.Info("application initialized successfully")
	return a, nil
}

// newApp wires the mediator and view models around an existing repository and executor.
func newApp(fyneApp fyne.App, cfg *Config, logger *slog.Logger, repo storage.Repository, client *rest.Client) *App {
	m := mediator.New().
		Use(mediator.RecoveryBehavior(logger)).
		Use(mediator.LoggingBehavior(logger))
	commands.NewHandlers(client, repo, logger).Register(m)

	return &App{
		fyneApp:  fyneApp,
		config:   cfg,
		logger:   logger,
		storage:  repo,
		client:   client,
		mediator: m,
		state:    model.NewApplicationState(m, logger),
	}
}

// Run starts the application and displays the main window.
// This is a blocking call that runs the Fyne event loop.
func (a *App) Run(window fyne.Window) {
	a.window = window
	a.logger.Info("starting application")
	a.window.ShowAndRun()

	if a.metrics != nil {
		if err := a.metrics.Close(context.Background()); err != nil {
			a.logger.Warn("failed to stop metrics server", slog.Any("error", err))
		}
	}
}

// State returns the application state for use by UI components.
func (a *App) State() *model.ApplicationState {
	return a.state
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Storage returns the storage repository.
func (a *App) Storage() storage.Repository {
	return a.storage
}

// FyneApp returns the underlying Fyne application instance.
func (a *App) FyneApp() fyne.App {
	return a.fyneApp
}

// RefreshActiveProfiles copies the active profile names into the state.
func (a *App) RefreshActiveProfiles() {
	for _, svc := range domain.ServiceKinds() {
		name := ""
		p, err := a.storage.ActiveProfile(svc)
		if err != nil {
			a.logger.Warn("failed to load active profile",
				slog.String("service", string(svc)),
				slog.Any("error", err))
		} else if p != nil {
			name = p.Name
		}
		a.state.SetActiveProfile(svc, name)
	}
}

// RefreshHistory reloads the most recent history entries into the state.
func (a *App) RefreshHistory() {
	entries, err := a.storage.GetHistory(historyLimit)
	if err != nil {
		a.logger.Warn("failed to load history", slog.Any("error", err))
		return
	}
	a.state.SetHistory(entries)
}

// ClearHistory removes all history entries.
func (a *App) ClearHistory() error {
	if err := a.storage.ClearHistory(); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	a.state.SetHistory(nil)
	return nil
}

// TestProfile sends a cheap request with the profile's credentials to check
// that the endpoint and key are accepted. It bypasses the mediator so the
// probe is not recorded in history.
func (a *App) TestProfile(ctx context.Context, p domain.Profile) error {
	var req domain.Request
	switch p.Service {
	case domain.ServiceFace:
		req = requests.ListPersonGroups("", 1)
	default:
		req = requests.DetectLanguage(requests.VersionStable, "Hello world")
	}

	a.logger.Info("testing profile",
		slog.String("service", string(p.Service)),
		slog.String("name", p.Name),
		slog.String("key", logging.Redact(p.Key)))

	_, err := a.client.Execute(ctx, req, p.Config())
	return err
}
