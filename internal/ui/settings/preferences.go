package settings

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// Preference keys.
const (
	PrefRequestTimeout = "requestTimeout"
	PrefTheme          = "appTheme"
)

// DefaultRequestTimeout is the per-operation timeout in seconds.
const DefaultRequestTimeout = 30.0

// RequestTimeout returns the saved per-operation timeout in seconds.
func RequestTimeout(a fyne.App) float64 {
	v := a.Preferences().FloatWithFallback(PrefRequestTimeout, DefaultRequestTimeout)
	if v <= 0 {
		return DefaultRequestTimeout
	}
	return v
}

// PreferencesCallbacks provides hooks for the preferences dialog to apply changes.
type PreferencesCallbacks struct {
	OnThemeChange func(mode string) // "system", "dark" or "light"
}

var themeLabels = map[string]string{
	"system": "System Default",
	"light":  "Light",
	"dark":   "Dark",
}

func themeMode(label string) string {
	for mode, l := range themeLabels {
		if l == label {
			return mode
		}
	}
	return "system"
}

// ShowPreferencesDialog displays the General and Appearance preferences.
func ShowPreferencesDialog(a fyne.App, window fyne.Window, callbacks PreferencesCallbacks) {
	prefs := a.Preferences()

	timeoutEntry := widget.NewEntry()
	timeoutEntry.SetText(strconv.FormatFloat(RequestTimeout(a), 'f', -1, 64))

	generalTab := container.NewTabItem("General", container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Request Timeout (seconds)", timeoutEntry),
		),
		widget.NewLabel("Applies to each analysis or person group operation."),
	))

	themeSelector := widget.NewSelect([]string{themeLabels["system"], themeLabels["light"], themeLabels["dark"]}, nil)
	themeSelector.SetSelected(themeLabels[prefs.StringWithFallback(PrefTheme, "system")])

	appearanceTab := container.NewTabItem("Appearance", container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Theme", themeSelector),
		),
	))

	tabs := container.NewAppTabs(generalTab, appearanceTab)

	dlg := dialog.NewCustomConfirm("Preferences", "Save", "Cancel", tabs, func(save bool) {
		if !save {
			return
		}
		if val, err := strconv.ParseFloat(timeoutEntry.Text, 64); err == nil && val > 0 {
			prefs.SetFloat(PrefRequestTimeout, val)
		}

		mode := themeMode(themeSelector.Selected)
		prefs.SetString(PrefTheme, mode)
		if callbacks.OnThemeChange != nil {
			callbacks.OnThemeChange(mode)
		}
	}, window)

	dlg.Resize(fyne.NewSize(500, 350))
	dlg.Show()
}
