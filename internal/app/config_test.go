package app

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_ResolveStoragePath(t *testing.T) {
	cfg := &Config{StoragePath: "/tmp/cogview-data"}
	path, err := cfg.ResolveStoragePath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/cogview-data", path)

	if runtime.GOOS == "windows" {
		t.Skip("home directory comes from USERPROFILE")
	}
	home := t.TempDir()
	t.Setenv("HOME", home)
	path, err = DefaultConfig().ResolveStoragePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".cogview"), path)
}
