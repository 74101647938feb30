package ui

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"

	"github.com/shhac/cogview/internal/domain"
	"github.com/shhac/cogview/internal/model"
	"github.com/shhac/cogview/internal/storage"
	uierrors "github.com/shhac/cogview/internal/ui/errors"
	"github.com/shhac/cogview/internal/ui/history"
	"github.com/shhac/cogview/internal/ui/services"
	"github.com/shhac/cogview/internal/ui/settings"
)

// AppController defines the app-level operations the UI needs.
type AppController interface {
	State() *model.ApplicationState
	Logger() *slog.Logger
	Storage() storage.Repository
	RefreshHistory()
	RefreshActiveProfiles()
	ClearHistory() error
	TestProfile(ctx context.Context, p domain.Profile) error
}

// MainWindow manages the main application window and its layout.
type MainWindow struct {
	window  fyne.Window
	fyneApp fyne.App
	state   *model.ApplicationState
	logger  *slog.Logger
	app     AppController

	tabs          *container.AppTabs
	textTab       *services.TextTab
	groupTab      *services.PersonGroupTab
	detectTab     *services.DetectTab
	historyPanel  *history.Panel
	profilesPanel *settings.ProfilesPanel
	statusBar     *uierrors.StatusBar

	// In-flight operations, cancelled together by Escape
	opMu    sync.Mutex
	nextOp  int
	cancels map[int]context.CancelFunc
}

// NewMainWindow creates the main window with one tab per service plus History.
func NewMainWindow(fyneApp fyne.App, app AppController) *MainWindow {
	window := fyneApp.NewWindow("Cogview - Cognitive Services Explorer")

	w := &MainWindow{
		window:  window,
		fyneApp: fyneApp,
		state:   app.State(),
		logger:  app.Logger(),
		app:     app,
		cancels: make(map[int]context.CancelFunc),
	}

	LoadThemePreference(fyneApp)

	showDetails := func(err error) { uierrors.ShowError(err, w.window, nil) }
	w.textTab = services.NewTextTab(w.state.Text, w.runOp, showDetails)
	w.groupTab = services.NewPersonGroupTab(w.state.PersonGroups, w.runOp, showDetails)
	w.detectTab = services.NewDetectTab(w.state.Detect, w.runOp, showDetails)
	w.historyPanel = history.NewPanel(w.state.History, w.logger, window, app.RefreshHistory, app.ClearHistory)
	w.profilesPanel = settings.NewProfilesPanel(app.Storage(), w.logger, window, app.TestProfile, app.RefreshActiveProfiles)
	w.statusBar = uierrors.NewStatusBar(w.state.ActiveProfiles)

	w.SetContent()
	w.setupMenu()
	w.setupKeyboardShortcuts()

	window.Resize(fyne.NewSize(1200, 800))
	return w
}

// runOp executes op on a goroutine with the preferred timeout, then reloads
// history so the History tab reflects the new entries.
func (w *MainWindow) runOp(op func(ctx context.Context)) {
	timeout := time.Duration(settings.RequestTimeout(w.fyneApp) * float64(time.Second))
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	w.opMu.Lock()
	id := w.nextOp
	w.nextOp++
	w.cancels[id] = cancel
	w.opMu.Unlock()

	go func() {
		defer func() {
			w.opMu.Lock()
			delete(w.cancels, id)
			w.opMu.Unlock()
			cancel()
		}()
		op(ctx)
		w.app.RefreshHistory()
	}()
}

// cancelOperations cancels every in-flight operation.
func (w *MainWindow) cancelOperations() int {
	w.opMu.Lock()
	defer w.opMu.Unlock()
	n := len(w.cancels)
	for id, cancel := range w.cancels {
		cancel()
		delete(w.cancels, id)
	}
	return n
}

// runSelected triggers the primary action of the visible tab.
func (w *MainWindow) runSelected() {
	switch w.tabs.SelectedIndex() {
	case 0:
		w.textTab.Analyze()
	case 1:
		w.groupTab.Run()
	case 2:
		w.detectTab.Detect()
	}
}

func (w *MainWindow) showSettings() {
	settings.ShowProfilesDialog(w.window, w.profilesPanel)
}

func (w *MainWindow) showPreferences() {
	settings.ShowPreferencesDialog(w.fyneApp, w.window, settings.PreferencesCallbacks{
		OnThemeChange: func(mode string) { ApplyTheme(w.fyneApp, mode) },
	})
}

func (w *MainWindow) confirmClearHistory() {
	dialog.ShowConfirm("Clear History", "Are you sure you want to clear all history entries?",
		func(ok bool) {
			if !ok {
				return
			}
			if err := w.app.ClearHistory(); err != nil {
				uierrors.ShowError(err, w.window, nil)
			}
		}, w.window)
}

func (w *MainWindow) setupMenu() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Settings...", w.showSettings),
		fyne.NewMenuItem("Preferences...", w.showPreferences),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear History", w.confirmClearHistory),
	)
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("Keyboard Shortcuts", func() { ShowShortcutDialog(w.window) }),
		fyne.NewMenuItem("About", func() { ShowAboutDialog(w.window) }),
	)
	w.window.SetMainMenu(fyne.NewMainMenu(fileMenu, helpMenu))
}

// SetContent builds and sets the main window layout.
//
//	┌───────────────────────────────────────────────┐
//	│ Text Analytics │ Person Groups │ Detect │ Hist │
//	├───────────────────────────────────────────────┤
//	│                  selected tab                 │
//	├───────────────────────────────────────────────┤
//	│ status: active profile per service            │
//	└───────────────────────────────────────────────┘
func (w *MainWindow) SetContent() {
	w.tabs = container.NewAppTabs(
		container.NewTabItem("Text Analytics", w.textTab),
		container.NewTabItem("Person Groups", w.groupTab),
		container.NewTabItem("Face Detect", w.detectTab),
		container.NewTabItem("History", w.historyPanel),
	)
	w.window.SetContent(container.NewBorder(nil, w.statusBar, nil, nil, w.tabs))
}

// Window returns the underlying Fyne window.
func (w *MainWindow) Window() fyne.Window {
	return w.window
}
