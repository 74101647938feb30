package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ModeTabs switches between two views of the same content with a horizontal
// RadioGroup, keeping it visually distinct from content-level AppTabs.
type ModeTabs struct {
	widget.BaseWidget

	modeSelect   *widget.RadioGroup
	labels       [2]string
	views        [2]fyne.CanvasObject
	contentStack *fyne.Container

	onModeChange func(mode string)
}

// NewModeTabs creates a toggle between two labeled views. The first view is
// shown initially.
func NewModeTabs(firstLabel string, first fyne.CanvasObject, secondLabel string, second fyne.CanvasObject) *ModeTabs {
	m := &ModeTabs{
		labels: [2]string{firstLabel, secondLabel},
		views:  [2]fyne.CanvasObject{first, second},
	}

	m.modeSelect = widget.NewRadioGroup(m.labels[:], func(selected string) {
		m.updateContent(selected)
		if m.onModeChange != nil {
			m.onModeChange(selected)
		}
	})
	m.modeSelect.Horizontal = true
	m.modeSelect.Required = true
	m.modeSelect.Selected = firstLabel

	m.contentStack = container.NewStack(first)

	m.ExtendBaseWidget(m)
	return m
}

// SetOnModeChange sets the callback invoked with the selected label.
func (m *ModeTabs) SetOnModeChange(fn func(mode string)) {
	m.onModeChange = fn
}

// SetMode selects the view with the given label. Unknown labels and the
// current mode are ignored.
func (m *ModeTabs) SetMode(mode string) {
	if m.GetMode() == mode {
		return
	}
	for _, l := range m.labels {
		if l == mode {
			m.modeSelect.SetSelected(mode)
			return
		}
	}
}

// GetMode returns the selected label.
func (m *ModeTabs) GetMode() string {
	if m.modeSelect.Selected == "" {
		return m.labels[0]
	}
	return m.modeSelect.Selected
}

func (m *ModeTabs) updateContent(mode string) {
	for i, l := range m.labels {
		if l == mode {
			m.contentStack.Objects = []fyne.CanvasObject{m.views[i]}
			m.contentStack.Refresh()
			return
		}
	}
}

// CreateRenderer implements fyne.Widget.
func (m *ModeTabs) CreateRenderer() fyne.WidgetRenderer {
	content := container.NewBorder(m.modeSelect, nil, nil, nil, m.contentStack)
	return widget.NewSimpleRenderer(content)
}
