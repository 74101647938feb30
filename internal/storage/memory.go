package storage

import (
	"fmt"
	"sync"

	"github.com/shhac/cogview/internal/domain"
)

type profileKey struct {
	service domain.ServiceKind
	name    string
}

// MemoryRepository implements Repository using in-memory storage for tests
type MemoryRepository struct {
	profiles map[profileKey]domain.Profile
	active   map[domain.ServiceKind]string
	history  []domain.HistoryEntry
	mu       sync.RWMutex
}

// NewMemoryRepository creates a new in-memory storage repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		profiles: make(map[profileKey]domain.Profile),
		active:   make(map[domain.ServiceKind]string),
		history:  []domain.HistoryEntry{},
	}
}

// SaveProfile validates and stores a profile in memory
func (m *MemoryRepository) SaveProfile(profile domain.Profile) error {
	if err := validateProfile(profile); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.profiles[profileKey{profile.Service, profile.Name}] = profile
	return nil
}

// LoadProfile retrieves a profile from memory
func (m *MemoryRepository) LoadProfile(service domain.ServiceKind, name string) (*domain.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[profileKey{service, name}]
	if !ok {
		return nil, notFound(service, name)
	}
	return &p, nil
}

// ListProfiles returns all stored profiles sorted by service, then name
func (m *MemoryRepository) ListProfiles() ([]domain.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	profiles := make([]domain.Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		profiles = append(profiles, p)
	}
	sortProfiles(profiles)
	return profiles, nil
}

// DeleteProfile removes a profile from memory
func (m *MemoryRepository) DeleteProfile(service domain.ServiceKind, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := profileKey{service, name}
	if _, ok := m.profiles[key]; !ok {
		return notFound(service, name)
	}
	delete(m.profiles, key)
	if m.active[service] == name {
		delete(m.active, service)
	}
	return nil
}

// SetActiveProfile marks an existing profile as active for its service
func (m *MemoryRepository) SetActiveProfile(service domain.ServiceKind, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.profiles[profileKey{service, name}]; !ok {
		return notFound(service, name)
	}
	m.active[service] = name
	return nil
}

// ActiveProfile returns the active profile for the service, or nil if none is set
func (m *MemoryRepository) ActiveProfile(service domain.ServiceKind) (*domain.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	name, ok := m.active[service]
	if !ok {
		return nil, nil
	}
	p := m.profiles[profileKey{service, name}]
	return &p, nil
}

// AddHistoryEntry prepends an entry, keeping at most maxHistory.
func (m *MemoryRepository) AddHistoryEntry(entry domain.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.history = prependHistory(m.history, entry)
	return nil
}

// GetHistory returns a copy of at most limit entries.
func (m *MemoryRepository) GetHistory(limit int) ([]domain.HistoryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return limitHistory(m.history, limit), nil
}

// ClearHistory removes all history entries
func (m *MemoryRepository) ClearHistory() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.history = []domain.HistoryEntry{}
	return nil
}
