package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

const (
	profilesFile   = "profiles.yaml"
	historyFile    = "history.json"
	maxHistory     = 100
	filePermission = 0600 // profiles hold subscription keys
	dirPermission  = 0755
)

// FileRepository implements Repository using files under a base directory:
// profiles in YAML (hand-editable) and history in JSON.
type FileRepository struct {
	basePath string
	logger   *slog.Logger
	mu       sync.Mutex
}

// NewFileRepository stores files under basePath, creating it on first write.
func NewFileRepository(basePath string, logger *slog.Logger) *FileRepository {
	return &FileRepository{
		basePath: basePath,
		logger:   logger,
	}
}

// atomicWriteFile replaces path with data through a synced temp file in the
// same directory, so readers never see a partially written profiles file.
func atomicWriteFile(path string, data []byte, perm os.FileMode) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = f.Chmod(perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (r *FileRepository) path(name string) string {
	return filepath.Join(r.basePath, name)
}

// readFile returns nil data and no error when name has not been written yet.
func (r *FileRepository) readFile(name string) ([]byte, error) {
	data, err := os.ReadFile(r.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func (r *FileRepository) writeFile(name string, data []byte) error {
	if err := os.MkdirAll(r.basePath, dirPermission); err != nil {
		return fmt.Errorf("create storage directory: %w", err)
	}
	return atomicWriteFile(r.path(name), data, filePermission)
}

func (r *FileRepository) removeFile(name string) error {
	err := os.Remove(r.path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}
