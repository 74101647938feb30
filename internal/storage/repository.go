package storage

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shhac/cogview/internal/domain"
	apperrors "github.com/shhac/cogview/internal/errors"
)

// Repository defines persistence operations for Cogview
type Repository interface {
	// Profile operations
	SaveProfile(profile domain.Profile) error
	LoadProfile(service domain.ServiceKind, name string) (*domain.Profile, error)
	ListProfiles() ([]domain.Profile, error)
	DeleteProfile(service domain.ServiceKind, name string) error

	// Active profile per service. ActiveProfile returns nil, nil when none is set.
	SetActiveProfile(service domain.ServiceKind, name string) error
	ActiveProfile(service domain.ServiceKind) (*domain.Profile, error)

	// History operations
	AddHistoryEntry(entry domain.HistoryEntry) error
	GetHistory(limit int) ([]domain.HistoryEntry, error)
	ClearHistory() error
}

// validateProfile runs struct validation and rejects names that would not
// round-trip through the profiles file or the settings list.
func validateProfile(p domain.Profile) error {
	if err := p.Validate(); err != nil {
		return apperrors.FromValidator(err)
	}
	if strings.TrimSpace(p.Name) != p.Name {
		return apperrors.ValidationError{Field: "Name", Message: "must not have leading or trailing spaces"}
	}
	if strings.IndexFunc(p.Name, unicode.IsControl) >= 0 {
		return apperrors.ValidationError{Field: "Name", Message: "must not contain control characters"}
	}
	return nil
}

func notFound(service domain.ServiceKind, name string) error {
	return fmt.Errorf("profile %q for %s not found", name, service.DisplayName())
}
