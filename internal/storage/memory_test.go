package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shhac/cogview/internal/domain"
)

func TestMemoryRepository_Profiles(t *testing.T) {
	repo := NewMemoryRepository()

	assert.Error(t, repo.SaveProfile(domain.Profile{Name: "dev"}), "invalid profiles are rejected")

	require.NoError(t, repo.SaveProfile(faceProfile("dev")))
	require.NoError(t, repo.SetActiveProfile(domain.ServiceFace, "dev"))

	active, err := repo.ActiveProfile(domain.ServiceFace)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, faceProfile("dev"), *active)

	require.NoError(t, repo.DeleteProfile(domain.ServiceFace, "dev"))
	active, err = repo.ActiveProfile(domain.ServiceFace)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestMemoryRepository_HistoryCopy(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.AddHistoryEntry(domain.HistoryEntry{ID: "1"}))
	require.NoError(t, repo.AddHistoryEntry(domain.HistoryEntry{ID: "2"}))

	history, err := repo.GetHistory(0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2", history[0].ID)

	history[0].ID = "mutated"
	again, _ := repo.GetHistory(1)
	assert.Equal(t, "2", again[0].ID)
}

// Interface compliance checks.
var (
	_ Repository = (*FileRepository)(nil)
	_ Repository = (*MemoryRepository)(nil)
)
