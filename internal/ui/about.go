package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/shhac/cogview/internal/logging"
)

// Version is set at build time via ldflags:
//
//	go build -ldflags "-X github.com/shhac/cogview/internal/ui.Version=1.2.3"
var Version = "dev"

// ShowAboutDialog displays information about Cogview.
func ShowAboutDialog(parent fyne.Window) {
	content := container.NewVBox(
		widget.NewLabelWithStyle("Cogview", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Explore the Face and Text Analytics REST APIs"),
		widget.NewLabel("Version "+Version),
		widget.NewSeparator(),
		widget.NewLabel("Built with Fyne and Go"),
	)
	if logPath, err := logging.LogFilePath("cogview"); err == nil {
		logLabel := widget.NewLabel("Logs: " + logPath)
		logLabel.Wrapping = fyne.TextWrapBreak
		content.Add(logLabel)
	}
	dialog.ShowCustom("About Cogview", "Close", content, parent)
}

// shortcutHelp lists the shortcuts installed by setupKeyboardShortcuts.
var shortcutHelp = []struct{ action, key string }{
	{"Run Current Tab", "⌘ Return"},
	{"Settings", "⌘ ,"},
	{"Clear Text Results", "⌘ L"},
	{"Switch Tab", "⌘ 1-4"},
	{"Cancel Requests", "Escape"},
}

// ShowShortcutDialog displays a reference of all keyboard shortcuts.
func ShowShortcutDialog(parent fyne.Window) {
	grid := container.NewGridWithColumns(2)
	for _, s := range shortcutHelp {
		grid.Add(widget.NewLabel(s.action))
		grid.Add(widget.NewLabelWithStyle(s.key, fyne.TextAlignTrailing, fyne.TextStyle{Monospace: true}))
	}
	dialog.ShowCustom("Keyboard Shortcuts", "Close", container.NewVScroll(grid), parent)
}
