package services

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"

	"github.com/shhac/cogview/internal/model"
	"github.com/shhac/cogview/internal/requests"
	"github.com/shhac/cogview/internal/ui/components"
	"github.com/shhac/cogview/internal/ui/request"
	"github.com/shhac/cogview/internal/ui/response"
)

// DetectTab runs Face API detection on an image URL.
type DetectTab struct {
	widget.BaseWidget

	vm      *model.FaceDetectViewModel
	run     Runner
	preview *request.Preview

	content fyne.CanvasObject
}

// NewDetectTab creates the Face Detect tab.
func NewDetectTab(vm *model.FaceDetectViewModel, run Runner, details ErrorDetails) *DetectTab {
	t := &DetectTab{vm: vm, run: run}
	t.ExtendBaseWidget(t)
	t.buildUI(details)
	return t
}

func (t *DetectTab) buildUI(details ErrorDetails) {
	t.preview = request.NewPreview()

	imageURL := widget.NewEntryWithData(t.vm.ImageURL)
	imageURL.SetPlaceHolder("https://example.com/photo.jpg")
	landmarks := widget.NewCheckWithData("Return landmarks", t.vm.ReturnLandmarks)

	attrs := widget.NewCheckGroup(requests.FaceAttributes(), func(selected []string) {
		t.vm.SetAttributes(selected)
		t.refreshPreview()
	})
	attrs.Horizontal = true

	refresh := binding.NewDataListener(t.refreshPreview)
	t.vm.ImageURL.AddListener(refresh)
	t.vm.ReturnLandmarks.AddListener(refresh)

	detectBtn := widget.NewButton("Detect", t.Detect)
	detectBtn.Importance = widget.HighImportance
	t.vm.Loading.AddListener(binding.NewDataListener(func() {
		if busy, _ := t.vm.Loading.Get(); busy {
			detectBtn.Disable()
			return
		}
		detectBtn.Enable()
	}))

	panel := response.NewPanel(t.vm.Result, t.vm.Error, t.vm.Loading)
	panel.SetOnErrorDetails(func() {
		if err := t.vm.LastError(); err != nil && details != nil {
			details(err)
		}
	})

	form := widget.NewForm(
		widget.NewFormItem("Image URL", imageURL),
		widget.NewFormItem("", landmarks),
	)
	t.content = container.NewBorder(
		container.NewVBox(
			form,
			components.NewCollapsibleSection("Face Attributes", attrs, false),
			detectBtn,
			t.preview,
		),
		nil, nil, nil,
		panel,
	)
}

func (t *DetectTab) refreshPreview() {
	if t.preview != nil {
		t.preview.SetRequest(t.vm.Request())
	}
}

// Detect runs face detection.
func (t *DetectTab) Detect() {
	t.run(t.vm.Detect)
}

// CreateRenderer implements fyne.Widget.
func (t *DetectTab) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.content)
}
