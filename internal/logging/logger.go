package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
)

const (
	maxLogSize    = 5 * 1024 * 1024
	maxLogBackups = 3
)

// InitLogger opens the platform log file for appName and returns a JSON logger
// writing to it. Debug enables DEBUG level with source locations.
//
//   - macOS:   ~/Library/Logs/<app>/<app>.log
//   - Linux:   ~/.local/state/<app>/<app>.log
//   - Windows: %LOCALAPPDATA%\<app>\Logs\<app>.log
func InitLogger(appName string, debug bool) (*slog.Logger, error) {
	logPath, err := LogFilePath(appName)
	if err != nil {
		return nil, err
	}
	w, err := openLogFile(logPath)
	if err != nil {
		return nil, err
	}
	return newLogger(w, debug), nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func openLogFile(logPath string) (*os.File, error) {
	dir := filepath.Dir(logPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}
	if err := rotate(logPath, maxLogSize, maxLogBackups); err != nil {
		return nil, fmt.Errorf("failed to rotate log file: %w", err)
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}
	return f, nil
}

func backupName(logPath string, n int) string {
	return fmt.Sprintf("%s.%d", logPath, n)
}

// rotate moves logPath to logPath.1 once it reaches limit bytes, shifting older
// backups up and dropping anything past keep.
func rotate(logPath string, limit int64, keep int) error {
	info, err := os.Stat(logPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.Size() < limit {
		return nil
	}

	_ = os.Remove(backupName(logPath, keep))
	for n := keep - 1; n >= 1; n-- {
		_ = os.Rename(backupName(logPath, n), backupName(logPath, n+1))
	}
	if err := os.Rename(logPath, backupName(logPath, 1)); err != nil {
		return fmt.Errorf("rotate log file: %w", err)
	}
	return nil
}

// LogFilePath returns where InitLogger writes for appName on this platform.
func LogFilePath(appName string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	file := appName + ".log"
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Logs", appName, file), nil
	case "linux":
		return filepath.Join(home, ".local", "state", appName, file), nil
	case "windows":
		base := os.Getenv("LOCALAPPDATA")
		if base == "" {
			base = filepath.Join(home, "AppData", "Local")
		}
		return filepath.Join(base, appName, "Logs", file), nil
	default:
		return "", fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError + 1,
	}))
}

// Redact masks a subscription key for log output, keeping the last four characters.
func Redact(secret string) string {
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}
