package errors

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/shhac/cogview/internal/domain"
)

// StatusBar shows which profile is active for each service. A configured
// service gets a checkmark and an unconfigured one a warning icon, so the
// state does not rely on color alone.
type StatusBar struct {
	widget.BaseWidget

	profiles map[domain.ServiceKind]binding.String
	items    *fyne.Container
}

// NewStatusBar creates a status bar bound to the active profile names.
func NewStatusBar(profiles map[domain.ServiceKind]binding.String) *StatusBar {
	s := &StatusBar{
		profiles: profiles,
		items:    container.NewHBox(),
	}
	s.ExtendBaseWidget(s)

	for _, svc := range domain.ServiceKinds() {
		icon := widget.NewIcon(theme.WarningIcon())
		label := widget.NewLabel("")
		label.Truncation = fyne.TextTruncateEllipsis
		s.items.Add(icon)
		s.items.Add(label)

		b, ok := profiles[svc]
		if !ok {
			continue
		}
		b.AddListener(binding.NewDataListener(func() {
			name, _ := b.Get()
			icon.SetResource(statusIcon(name))
			label.SetText(statusText(svc, name))
		}))
	}
	return s
}

func statusIcon(profile string) fyne.Resource {
	if profile == "" {
		return theme.WarningIcon()
	}
	return theme.ConfirmIcon()
}

func statusText(svc domain.ServiceKind, profile string) string {
	if profile == "" {
		return svc.DisplayName() + ": not configured"
	}
	return fmt.Sprintf("%s: %s", svc.DisplayName(), profile)
}

// CreateRenderer implements fyne.Widget.
func (s *StatusBar) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.items)
}
