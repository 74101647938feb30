package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

var _ desktop.Hoverable = (*HintLabel)(nil)

// HintLabel is a subdued label that truncates to maxRunes and shows the full
// text in a popup on hover.
type HintLabel struct {
	widget.BaseWidget

	fullText string
	maxRunes int
	label    *widget.Label
	popup    *widget.PopUp
}

// NewHintLabel creates a LowImportance label truncated to maxRunes.
func NewHintLabel(text string, maxRunes int) *HintLabel {
	h := &HintLabel{maxRunes: maxRunes, label: widget.NewLabel("")}
	h.label.Importance = widget.LowImportance
	h.ExtendBaseWidget(h)
	h.SetText(text)
	return h
}

// SetText replaces the text, re-applying truncation.
func (h *HintLabel) SetText(text string) {
	h.fullText = text
	h.label.SetText(truncateRunes(text, h.maxRunes))
}

// truncateRunes returns s unchanged if it has at most max runes,
// otherwise truncates to max-1 runes and appends "…".
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// MouseIn shows the full text when it is truncated.
func (h *HintLabel) MouseIn(_ *desktop.MouseEvent) {
	if len([]rune(h.fullText)) <= h.maxRunes {
		return
	}
	c := fyne.CurrentApp().Driver().CanvasForObject(h)
	if c == nil {
		return
	}
	h.popup = widget.NewPopUp(widget.NewLabel(h.fullText), c)
	h.popup.ShowAtRelativePosition(fyne.NewPos(0, h.Size().Height), h)
}

// MouseMoved is required by desktop.Hoverable.
func (h *HintLabel) MouseMoved(_ *desktop.MouseEvent) {}

// MouseOut hides the popup.
func (h *HintLabel) MouseOut() {
	if h.popup != nil {
		h.popup.Hide()
		h.popup = nil
	}
}

// CreateRenderer implements fyne.Widget.
func (h *HintLabel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(h.label)
}
