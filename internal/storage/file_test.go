package storage

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shhac/cogview/internal/domain"
	apperrors "github.com/shhac/cogview/internal/errors"
	"github.com/shhac/cogview/internal/logging"
)

func TestAtomicWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), profilesFile)

	require.NoError(t, atomicWriteFile(path, []byte("old"), 0600))
	require.NoError(t, atomicWriteFile(path, []byte("profiles: []\n"), 0600))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "profiles: []\n", string(got))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}
}

func TestAtomicWriteFile_LeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	err := atomicWriteFile(filepath.Join(dir, "missing", historyFile), []byte("[]"), 0600)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".tmp-"), e.Name())
	}
}

func newFileRepo(t *testing.T) (*FileRepository, string) {
	t.Helper()
	dir := t.TempDir()
	return NewFileRepository(dir, logging.NewNopLogger()), dir
}

func faceProfile(name string) domain.Profile {
	return domain.Profile{
		Name:     name,
		Service:  domain.ServiceFace,
		Endpoint: "https://westus.api.cognitive.microsoft.com",
		Key:      "0123456789abcdef",
	}
}

func TestFileRepository_ProfileRoundTrip(t *testing.T) {
	repo, dir := newFileRepo(t)

	require.NoError(t, repo.SaveProfile(faceProfile("dev")))

	loaded, err := repo.LoadProfile(domain.ServiceFace, "dev")
	require.NoError(t, err)
	assert.Equal(t, faceProfile("dev"), *loaded)

	// A fresh repository on the same directory sees the same data.
	again := NewFileRepository(dir, logging.NewNopLogger())
	loaded, err = again.LoadProfile(domain.ServiceFace, "dev")
	require.NoError(t, err)
	assert.Equal(t, "dev", loaded.Name)

	data, err := os.ReadFile(filepath.Join(dir, profilesFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "endpoint: https://westus.api.cognitive.microsoft.com")
}

func TestFileRepository_SaveProfileReplaces(t *testing.T) {
	repo, _ := newFileRepo(t)

	p := faceProfile("dev")
	require.NoError(t, repo.SaveProfile(p))
	p.Key = "rotated-key"
	require.NoError(t, repo.SaveProfile(p))

	profiles, err := repo.ListProfiles()
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "rotated-key", profiles[0].Key)
}

func TestFileRepository_SaveProfileValidation(t *testing.T) {
	repo, _ := newFileRepo(t)

	tests := []struct {
		name   string
		mutate func(*domain.Profile)
	}{
		{"empty name", func(p *domain.Profile) { p.Name = "" }},
		{"long name", func(p *domain.Profile) { p.Name = strings.Repeat("x", 65) }},
		{"padded name", func(p *domain.Profile) { p.Name = " dev" }},
		{"control char", func(p *domain.Profile) { p.Name = "dev\nprod" }},
		{"bad service", func(p *domain.Profile) { p.Service = "vision" }},
		{"bad endpoint", func(p *domain.Profile) { p.Endpoint = "westus" }},
		{"missing key", func(p *domain.Profile) { p.Key = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := faceProfile("dev")
			tt.mutate(&p)
			err := repo.SaveProfile(p)
			require.Error(t, err)
			uiErr := apperrors.ClassifyError(err)
			assert.Equal(t, "Validation Error", uiErr.Title)
		})
	}
}

func TestFileRepository_ListProfilesSorted(t *testing.T) {
	repo, _ := newFileRepo(t)

	text := faceProfile("a-text")
	text.Service = domain.ServiceText
	require.NoError(t, repo.SaveProfile(text))
	require.NoError(t, repo.SaveProfile(faceProfile("zeta")))
	require.NoError(t, repo.SaveProfile(faceProfile("alpha")))

	profiles, err := repo.ListProfiles()
	require.NoError(t, err)

	var names []string
	for _, p := range profiles {
		names = append(names, string(p.Service)+"/"+p.Name)
	}
	assert.Equal(t, []string{"face/alpha", "face/zeta", "text/a-text"}, names)
}

func TestFileRepository_ActiveProfile(t *testing.T) {
	repo, _ := newFileRepo(t)

	active, err := repo.ActiveProfile(domain.ServiceFace)
	require.NoError(t, err)
	assert.Nil(t, active, "no active profile before any is set")

	assert.Error(t, repo.SetActiveProfile(domain.ServiceFace, "missing"))

	require.NoError(t, repo.SaveProfile(faceProfile("dev")))
	require.NoError(t, repo.SetActiveProfile(domain.ServiceFace, "dev"))

	active, err = repo.ActiveProfile(domain.ServiceFace)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "dev", active.Name)

	active, err = repo.ActiveProfile(domain.ServiceText)
	require.NoError(t, err)
	assert.Nil(t, active)

	require.NoError(t, repo.DeleteProfile(domain.ServiceFace, "dev"))
	active, err = repo.ActiveProfile(domain.ServiceFace)
	require.NoError(t, err)
	assert.Nil(t, active, "deleting the active profile clears it")
}

func TestFileRepository_DeleteMissingProfile(t *testing.T) {
	repo, _ := newFileRepo(t)
	assert.Error(t, repo.DeleteProfile(domain.ServiceFace, "missing"))
	_, err := repo.LoadProfile(domain.ServiceFace, "missing")
	assert.Error(t, err)
}

func TestFileRepository_CorruptProfiles(t *testing.T) {
	repo, dir := newFileRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, profilesFile), []byte("profiles: [unclosed"), 0600))

	_, err := repo.ListProfiles()
	assert.Error(t, err)
}

func TestFileRepository_History(t *testing.T) {
	repo, _ := newFileRepo(t)

	history, err := repo.GetHistory(0)
	require.NoError(t, err)
	assert.Empty(t, history)

	for i := 0; i < maxHistory+5; i++ {
		require.NoError(t, repo.AddHistoryEntry(domain.HistoryEntry{
			ID:        string(rune('a' + i%26)),
			Timestamp: time.Unix(int64(i), 0).UTC(),
			Path:      "/face/v1.0/persongroups",
			Status:    "success",
		}))
	}

	history, err = repo.GetHistory(0)
	require.NoError(t, err)
	assert.Len(t, history, maxHistory)
	assert.Equal(t, time.Unix(int64(maxHistory+4), 0).UTC(), history[0].Timestamp, "most recent first")

	limited, err := repo.GetHistory(3)
	require.NoError(t, err)
	assert.Len(t, limited, 3)

	require.NoError(t, repo.ClearHistory())
	require.NoError(t, repo.ClearHistory(), "clearing twice is not an error")
	history, err = repo.GetHistory(0)
	require.NoError(t, err)
	assert.Empty(t, history)
}
