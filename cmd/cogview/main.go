package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"fyne.io/fyne/v2/app"
	"github.com/urfave/cli/v3"

	cogviewApp "github.com/shhac/cogview/internal/app"
	"github.com/shhac/cogview/internal/ui"
)

// overridden during build with ldflags
var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:    "cogview",
		Usage:   "Desktop explorer for the Face and Text Analytics REST APIs",
		Version: version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Enable debug logging",
				Sources: cli.EnvVars("COGVIEW_DEBUG"),
			},
			&cli.StringFlag{
				Name:    "storage-path",
				Usage:   "Directory for profiles and history (default ~/.cogview)",
				Sources: cli.EnvVars("COGVIEW_STORAGE_PATH"),
			},
			&cli.StringFlag{
				Name:    "metrics-addr",
				Usage:   "Serve Prometheus request metrics on this address (e.g. localhost:9090)",
				Sources: cli.EnvVars("COGVIEW_METRICS_ADDR"),
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg := cogviewApp.DefaultConfig()
			cfg.Debug = cmd.Bool("debug")
			cfg.StoragePath = cmd.String("storage-path")
			cfg.MetricsAddr = cmd.String("metrics-addr")
			return runApp(cfg)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// runApp is the main application entry point with panic recovery.
func runApp(cfg *cogviewApp.Config) (err error) {
	// Create a temporary stdout logger for bootstrap errors
	tempLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	defer func() {
		if r := recover(); r != nil {
			tempLogger.Error("panic recovered",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	tempLogger.Info("starting Cogview", slog.String("version", version))

	fyneApp := app.NewWithID("com.cogview.client")

	cogview, err := cogviewApp.New(fyneApp, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	mainWindow := ui.NewMainWindow(cogview.FyneApp(), cogview)

	// Run the application (blocking)
	cogview.Run(mainWindow.Window())

	cogview.Logger().Info("application shutdown complete")
	return nil
}
