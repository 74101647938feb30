package storage

import (
	"os"
	"path/filepath"
)

const appDir = ".cogview"

// DefaultStoragePath returns the default storage location for Cogview
// Platform-specific paths:
//   - macOS/Linux: ~/.cogview
//   - Windows: %USERPROFILE%\.cogview
func DefaultStoragePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDir), nil
}
