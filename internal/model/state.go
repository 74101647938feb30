package model

import (
	"log/slog"

	"fyne.io/fyne/v2/data/binding"

	"github.com/shhac/cogview/internal/domain"
	"github.com/shhac/cogview/internal/mediator"
)

// ApplicationState aggregates the view models and the bindings shared across tabs.
type ApplicationState struct {
	Text         *TextAnalysisViewModel
	PersonGroups *PersonGroupViewModel
	Detect       *FaceDetectViewModel

	// Active profile name per service, shown in the status bar
	ActiveProfiles map[domain.ServiceKind]binding.String

	History binding.UntypedList // []domain.HistoryEntry, newest first
}

// NewApplicationState creates every view model on the shared mediator.
func NewApplicationState(m *mediator.Mediator, logger *slog.Logger) *ApplicationState {
	s := &ApplicationState{
		Text:           NewTextAnalysisViewModel(m, logger),
		PersonGroups:   NewPersonGroupViewModel(m, logger),
		Detect:         NewFaceDetectViewModel(m, logger),
		ActiveProfiles: make(map[domain.ServiceKind]binding.String),
		History:        binding.NewUntypedList(),
	}
	for _, svc := range domain.ServiceKinds() {
		s.ActiveProfiles[svc] = binding.NewString()
	}
	return s
}

// SetHistory replaces the history list.
func (s *ApplicationState) SetHistory(entries []domain.HistoryEntry) {
	items := make([]any, len(entries))
	for i, e := range entries {
		items[i] = e
	}
	_ = s.History.Set(items)
}

// SetActiveProfile records the active profile name for a service. An empty
// name means the service is not configured.
func (s *ApplicationState) SetActiveProfile(service domain.ServiceKind, name string) {
	if b, ok := s.ActiveProfiles[service]; ok {
		_ = b.Set(name)
	}
}
