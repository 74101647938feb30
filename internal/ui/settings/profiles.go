package settings

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/shhac/cogview/internal/domain"
	apperrors "github.com/shhac/cogview/internal/errors"
	"github.com/shhac/cogview/internal/logging"
	"github.com/shhac/cogview/internal/storage"
	uierrors "github.com/shhac/cogview/internal/ui/errors"
)

const testTimeout = 15 * time.Second

// ProfileTester checks a profile's endpoint and key against the live service.
type ProfileTester func(ctx context.Context, p domain.Profile) error

// ProfilesPanel lists saved profiles and edits one at a time.
type ProfilesPanel struct {
	widget.BaseWidget

	storage storage.Repository
	logger  *slog.Logger
	window  fyne.Window
	test    ProfileTester

	profiles []domain.Profile
	active   map[domain.ServiceKind]string

	listWidget    *widget.List
	placeholder   *widget.Label
	nameEntry     *widget.Entry
	serviceSelect *widget.Select
	endpointEntry *widget.Entry
	keyEntry      *widget.Entry
	testBtn       *widget.Button

	onChange func()

	content *fyne.Container
}

// NewProfilesPanel creates a panel over the repository. onChange runs after
// every save, delete or activation.
func NewProfilesPanel(repo storage.Repository, logger *slog.Logger, window fyne.Window, test ProfileTester, onChange func()) *ProfilesPanel {
	p := &ProfilesPanel{
		storage:  repo,
		logger:   logger,
		window:   window,
		test:     test,
		onChange: onChange,
		active:   make(map[domain.ServiceKind]string),
	}
	p.ExtendBaseWidget(p)
	p.buildUI()
	p.RefreshList()
	return p
}

func serviceOptions() []string {
	kinds := domain.ServiceKinds()
	opts := make([]string, len(kinds))
	for i, k := range kinds {
		opts[i] = k.DisplayName()
	}
	return opts
}

func serviceFromOption(opt string) domain.ServiceKind {
	for _, k := range domain.ServiceKinds() {
		if k.DisplayName() == opt {
			return k
		}
	}
	return ""
}

func (p *ProfilesPanel) buildUI() {
	p.listWidget = widget.NewList(
		func() int { return len(p.profiles) },
		func() fyne.CanvasObject { return widget.NewLabel("template") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(p.profiles) {
				return
			}
			obj.(*widget.Label).SetText(p.describe(p.profiles[id]))
		},
	)
	p.listWidget.OnSelected = func(id widget.ListItemID) {
		if id < len(p.profiles) {
			p.load(p.profiles[id])
		}
	}

	p.placeholder = widget.NewLabel("No profiles yet. Fill in the form below and Save.")
	p.placeholder.Alignment = fyne.TextAlignCenter
	p.placeholder.Wrapping = fyne.TextWrapWord
	p.placeholder.TextStyle = fyne.TextStyle{Italic: true}

	p.nameEntry = widget.NewEntry()
	p.nameEntry.SetPlaceHolder("e.g. westus-dev")
	p.serviceSelect = widget.NewSelect(serviceOptions(), nil)
	p.serviceSelect.SetSelectedIndex(0)
	p.endpointEntry = widget.NewEntry()
	p.endpointEntry.SetPlaceHolder("https://westus.api.cognitive.microsoft.com")
	p.keyEntry = widget.NewPasswordEntry()
	p.keyEntry.SetPlaceHolder("Subscription key")

	form := widget.NewForm(
		widget.NewFormItem("Name", p.nameEntry),
		widget.NewFormItem("Service", p.serviceSelect),
		widget.NewFormItem("Endpoint", p.endpointEntry),
		widget.NewFormItem("Key", p.keyEntry),
	)

	saveBtn := widget.NewButton("Save", p.handleSave)
	saveBtn.Importance = widget.HighImportance
	activateBtn := widget.NewButton("Activate", p.handleActivate)
	p.testBtn = widget.NewButton("Test", p.handleTest)
	deleteBtn := widget.NewButton("Delete", p.handleDelete)
	deleteBtn.Importance = widget.DangerImportance
	newBtn := widget.NewButton("New", p.handleNew)

	title := widget.NewLabelWithStyle("Profiles", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	p.content = container.NewBorder(
		title,
		container.NewVBox(
			form,
			container.NewGridWithColumns(3, saveBtn, activateBtn, p.testBtn),
			container.NewGridWithColumns(2, deleteBtn, newBtn),
		),
		nil, nil,
		container.NewStack(container.NewScroll(p.listWidget), p.placeholder),
	)
}

// describe renders a list row, marking active profiles.
func (p *ProfilesPanel) describe(profile domain.Profile) string {
	text := fmt.Sprintf("%s (%s)", profile.Name, profile.Service.DisplayName())
	if p.active[profile.Service] == profile.Name {
		text += " ✓ active"
	}
	return text
}

// CreateRenderer implements fyne.Widget.
func (p *ProfilesPanel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.content)
}

// RefreshList reloads profiles and active selections from storage.
func (p *ProfilesPanel) RefreshList() {
	profiles, err := p.storage.ListProfiles()
	if err != nil {
		p.logger.Error("failed to list profiles", slog.Any("error", err))
		return
	}
	p.profiles = profiles

	for _, svc := range domain.ServiceKinds() {
		p.active[svc] = ""
		if a, err := p.storage.ActiveProfile(svc); err == nil && a != nil {
			p.active[svc] = a.Name
		}
	}

	if len(profiles) == 0 {
		p.placeholder.Show()
	} else {
		p.placeholder.Hide()
	}
	p.listWidget.Refresh()
}

// Profile returns the profile described by the form.
func (p *ProfilesPanel) Profile() domain.Profile {
	return domain.Profile{
		Name:     p.nameEntry.Text,
		Service:  serviceFromOption(p.serviceSelect.Selected),
		Endpoint: p.endpointEntry.Text,
		Key:      p.keyEntry.Text,
	}
}

func (p *ProfilesPanel) load(profile domain.Profile) {
	p.nameEntry.SetText(profile.Name)
	p.serviceSelect.SetSelected(profile.Service.DisplayName())
	p.endpointEntry.SetText(profile.Endpoint)
	p.keyEntry.SetText(profile.Key)
}

func (p *ProfilesPanel) changed() {
	p.RefreshList()
	if p.onChange != nil {
		p.onChange()
	}
}

func (p *ProfilesPanel) handleSave() {
	profile := p.Profile()
	if err := p.storage.SaveProfile(profile); err != nil {
		p.logger.Warn("failed to save profile",
			slog.String("name", profile.Name),
			slog.Any("error", err))
		uierrors.ShowError(err, p.window, nil)
		return
	}

	// The first profile for a service becomes active without an extra click.
	if p.active[profile.Service] == "" {
		if err := p.storage.SetActiveProfile(profile.Service, profile.Name); err != nil {
			p.logger.Warn("failed to activate profile", slog.Any("error", err))
		}
	}

	p.logger.Info("profile saved",
		slog.String("name", profile.Name),
		slog.String("service", string(profile.Service)),
		slog.String("key", logging.Redact(profile.Key)))
	p.changed()
}

func (p *ProfilesPanel) handleActivate() {
	profile := p.Profile()
	if err := p.storage.SetActiveProfile(profile.Service, profile.Name); err != nil {
		uierrors.ShowError(err, p.window, nil)
		return
	}
	p.logger.Info("profile activated",
		slog.String("name", profile.Name),
		slog.String("service", string(profile.Service)))
	p.changed()
}

func (p *ProfilesPanel) handleDelete() {
	profile := p.Profile()
	if profile.Name == "" {
		return
	}
	dialog.ShowConfirm("Delete Profile",
		fmt.Sprintf("Delete profile '%s' for %s? This cannot be undone.", profile.Name, profile.Service.DisplayName()),
		func(confirmed bool) {
			if !confirmed {
				return
			}
			if err := p.storage.DeleteProfile(profile.Service, profile.Name); err != nil {
				uierrors.ShowError(err, p.window, nil)
				return
			}
			p.logger.Info("profile deleted", slog.String("name", profile.Name))
			p.handleNew()
			p.changed()
		},
		p.window,
	)
}

func (p *ProfilesPanel) handleNew() {
	p.nameEntry.SetText("")
	p.endpointEntry.SetText("")
	p.keyEntry.SetText("")
	p.listWidget.UnselectAll()
}

func (p *ProfilesPanel) handleTest() {
	profile := p.Profile()
	if err := profile.Validate(); err != nil {
		uierrors.ShowError(apperrors.FromValidator(err), p.window, nil)
		return
	}

	p.testBtn.Disable()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()
		err := p.test(ctx, profile)

		fyne.Do(func() {
			p.testBtn.Enable()
			if err != nil {
				uierrors.ShowError(err, p.window, p.handleTest)
				return
			}
			dialog.ShowInformation("Connection OK",
				fmt.Sprintf("%s accepted the endpoint and key.", profile.Service.DisplayName()),
				p.window)
		})
	}()
}

// ShowProfilesDialog opens the profile manager in a dialog.
func ShowProfilesDialog(window fyne.Window, panel *ProfilesPanel) {
	panel.RefreshList()
	d := dialog.NewCustom("Settings", "Close", panel, window)
	d.Resize(fyne.NewSize(560, 520))
	d.Show()
}
