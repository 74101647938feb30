package storage

import (
	"fmt"
	"log/slog"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/shhac/cogview/internal/domain"
)

// profilesDocument is the on-disk layout of profiles.yaml.
type profilesDocument struct {
	Active   map[domain.ServiceKind]string `yaml:"active,omitempty"`
	Profiles []domain.Profile              `yaml:"profiles"`
}

func (d *profilesDocument) find(service domain.ServiceKind, name string) int {
	for i, p := range d.Profiles {
		if p.Service == service && p.Name == name {
			return i
		}
	}
	return -1
}

// SaveProfile validates and stores a profile, replacing one with the same service and name.
func (r *FileRepository) SaveProfile(profile domain.Profile) error {
	if err := validateProfile(profile); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.loadProfiles()
	if err != nil {
		return fmt.Errorf("load profiles: %w", err)
	}

	if i := doc.find(profile.Service, profile.Name); i >= 0 {
		doc.Profiles[i] = profile
	} else {
		doc.Profiles = append(doc.Profiles, profile)
	}

	if err := r.saveProfiles(doc); err != nil {
		return fmt.Errorf("save profiles: %w", err)
	}

	r.logger.Debug("saved profile",
		slog.String("name", profile.Name),
		slog.String("service", string(profile.Service)))

	return nil
}

// LoadProfile returns a single profile
func (r *FileRepository) LoadProfile(service domain.ServiceKind, name string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.loadProfiles()
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}

	i := doc.find(service, name)
	if i < 0 {
		return nil, notFound(service, name)
	}
	p := doc.Profiles[i]
	return &p, nil
}

// ListProfiles returns all profiles sorted by service, then name
func (r *FileRepository) ListProfiles() ([]domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.loadProfiles()
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}

	profiles := append([]domain.Profile(nil), doc.Profiles...)
	sortProfiles(profiles)

	r.logger.Debug("listed profiles", slog.Int("count", len(profiles)))
	return profiles, nil
}

// DeleteProfile removes a profile and clears it as the active profile if it was.
func (r *FileRepository) DeleteProfile(service domain.ServiceKind, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.loadProfiles()
	if err != nil {
		return fmt.Errorf("load profiles: %w", err)
	}

	i := doc.find(service, name)
	if i < 0 {
		return notFound(service, name)
	}
	doc.Profiles = append(doc.Profiles[:i], doc.Profiles[i+1:]...)
	if doc.Active[service] == name {
		delete(doc.Active, service)
	}

	if err := r.saveProfiles(doc); err != nil {
		return fmt.Errorf("save profiles: %w", err)
	}

	r.logger.Debug("deleted profile",
		slog.String("name", name),
		slog.String("service", string(service)))

	return nil
}

// SetActiveProfile marks an existing profile as the one used for the service.
func (r *FileRepository) SetActiveProfile(service domain.ServiceKind, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.loadProfiles()
	if err != nil {
		return fmt.Errorf("load profiles: %w", err)
	}
	if doc.find(service, name) < 0 {
		return notFound(service, name)
	}

	if doc.Active == nil {
		doc.Active = make(map[domain.ServiceKind]string)
	}
	doc.Active[service] = name

	if err := r.saveProfiles(doc); err != nil {
		return fmt.Errorf("save profiles: %w", err)
	}

	r.logger.Info("activated profile",
		slog.String("name", name),
		slog.String("service", string(service)))

	return nil
}

// ActiveProfile returns the active profile for the service, or nil if none is set.
func (r *FileRepository) ActiveProfile(service domain.ServiceKind) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.loadProfiles()
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}

	name, ok := doc.Active[service]
	if !ok {
		return nil, nil
	}
	i := doc.find(service, name)
	if i < 0 {
		// Stale reference from a hand-edited file
		r.logger.Warn("active profile missing",
			slog.String("name", name),
			slog.String("service", string(service)))
		return nil, nil
	}
	p := doc.Profiles[i]
	return &p, nil
}

func (r *FileRepository) loadProfiles() (*profilesDocument, error) {
	data, err := r.readFile(profilesFile)
	if err != nil {
		return nil, err
	}

	doc := &profilesDocument{}
	if data == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("unmarshal profiles: %w", err)
	}
	return doc, nil
}

func (r *FileRepository) saveProfiles(doc *profilesDocument) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal profiles: %w", err)
	}
	return r.writeFile(profilesFile, data)
}

func sortProfiles(profiles []domain.Profile) {
	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].Service != profiles[j].Service {
			return profiles[i].Service < profiles[j].Service
		}
		return profiles[i].Name < profiles[j].Name
	})
}
