package response

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/shhac/cogview/internal/ui/components"
)

// Panel displays one response body, or the view model's error in its place.
type Panel struct {
	widget.BaseWidget

	body    binding.String
	errText binding.String
	loading binding.Bool

	pretty     *widget.RichText
	raw        *ReadOnlyEntry
	modes      *components.ModeTabs
	errorLabel *widget.Label
	detailsBtn *widget.Button
	loadingBar *widget.ProgressBarInfinite

	contentContainer *fyne.Container
	responseContent  fyne.CanvasObject
	errorContent     fyne.CanvasObject

	onDetails func()
}

// NewPanel creates a panel bound to a response body, an error message and a
// loading flag.
func NewPanel(body, errText binding.String, loading binding.Bool) *Panel {
	p := &Panel{
		body:    body,
		errText: errText,
		loading: loading,
	}
	p.ExtendBaseWidget(p)
	p.initializeComponents()
	p.setupBindings()
	return p
}

func (p *Panel) initializeComponents() {
	p.pretty = widget.NewRichText()
	p.pretty.Wrapping = fyne.TextWrapBreak
	p.raw = NewReadOnlyMultiLineEntry()
	p.modes = components.NewModeTabs("Pretty", container.NewVScroll(p.pretty), "Raw", p.raw)

	p.loadingBar = widget.NewProgressBarInfinite()
	p.loadingBar.Stop()
	p.loadingBar.Hide()

	p.errorLabel = widget.NewLabel("")
	p.errorLabel.Wrapping = fyne.TextWrapWord
	p.errorLabel.Importance = widget.DangerImportance
	p.detailsBtn = widget.NewButtonWithIcon("Details", theme.InfoIcon(), func() {
		if p.onDetails != nil {
			p.onDetails()
		}
	})
	p.detailsBtn.Hide()

	p.responseContent = container.NewBorder(widget.NewLabel("Response:"), nil, nil, nil, p.modes)
	p.errorContent = container.NewBorder(
		widget.NewLabel("Error:"),
		container.NewHBox(p.detailsBtn),
		nil, nil,
		container.NewVScroll(p.errorLabel),
	)
	p.contentContainer = container.NewStack(p.responseContent)
}

func (p *Panel) setupBindings() {
	p.body.AddListener(binding.NewDataListener(func() {
		body, _ := p.body.Get()
		formatted := PrettyJSON(body)
		p.pretty.Segments = highlight(formatted)
		p.pretty.Refresh()
		p.raw.SetText(body)
	}))

	p.loading.AddListener(binding.NewDataListener(func() {
		if loading, _ := p.loading.Get(); loading {
			p.loadingBar.Start()
			p.loadingBar.Show()
			return
		}
		p.loadingBar.Stop()
		p.loadingBar.Hide()
	}))

	p.errText.AddListener(binding.NewDataListener(func() {
		msg, _ := p.errText.Get()
		if msg == "" {
			p.show(p.responseContent)
			return
		}
		p.errorLabel.SetText(msg)
		p.show(p.errorContent)
	}))
}

func (p *Panel) show(obj fyne.CanvasObject) {
	p.contentContainer.Objects = []fyne.CanvasObject{obj}
	p.contentContainer.Refresh()
}

// SetOnErrorDetails installs the handler behind the error view's Details
// button. The button is hidden while no handler is set.
func (p *Panel) SetOnErrorDetails(fn func()) {
	p.onDetails = fn
	if fn == nil {
		p.detailsBtn.Hide()
	} else {
		p.detailsBtn.Show()
	}
}

// CreateRenderer implements fyne.Widget.
func (p *Panel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewBorder(nil, p.loadingBar, nil, nil, p.contentContainer))
}

// MinSize implements fyne.Widget.
func (p *Panel) MinSize() fyne.Size {
	return fyne.NewSize(400, 240)
}
