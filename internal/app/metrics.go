package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/shhac/cogview/internal/rest"
)

const metricsShutdownTimeout = 5 * time.Second

// metricsServer exposes /metrics while the window is open.
type metricsServer struct {
	srv    *http.Server
	addr   string
	logger *slog.Logger
}

// startMetricsServer binds addr before returning so a bad address fails startup.
func startMetricsServer(addr string, logger *slog.Logger) (*metricsServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on metrics address %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", rest.MetricsHandler())

	m := &metricsServer{
		srv: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		addr:   ln.Addr().String(),
		logger: logger,
	}

	go func() {
		if err := m.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", slog.Any("error", err))
		}
	}()

	logger.Info("serving metrics", slog.String("addr", m.addr))
	return m, nil
}

// Addr returns the bound address, resolving any ":0" port.
func (m *metricsServer) Addr() string {
	return m.addr
}

func (m *metricsServer) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, metricsShutdownTimeout)
	defer cancel()
	return m.srv.Shutdown(ctx)
}
