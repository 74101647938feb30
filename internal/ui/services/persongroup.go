package services

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"

	"github.com/shhac/cogview/internal/model"
	"github.com/shhac/cogview/internal/requests"
	"github.com/shhac/cogview/internal/ui/request"
	"github.com/shhac/cogview/internal/ui/response"
)

const defaultModel = "(service default)"

// PersonGroupTab manages Face API person groups.
type PersonGroupTab struct {
	widget.BaseWidget

	vm  *model.PersonGroupViewModel
	run Runner

	opSelect *widget.Select
	preview  *request.Preview

	content fyne.CanvasObject
}

// NewPersonGroupTab creates the Person Groups tab.
func NewPersonGroupTab(vm *model.PersonGroupViewModel, run Runner, details ErrorDetails) *PersonGroupTab {
	t := &PersonGroupTab{vm: vm, run: run}
	t.ExtendBaseWidget(t)
	t.buildUI(details)
	return t
}

func (t *PersonGroupTab) buildUI(details ErrorDetails) {
	ops := model.PersonGroupOps()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = string(op)
	}

	t.preview = request.NewPreview()
	t.opSelect = widget.NewSelect(names, func(string) { t.refreshPreview() })
	t.opSelect.SetSelectedIndex(0)

	groupID := widget.NewEntryWithData(t.vm.GroupID)
	groupID.SetPlaceHolder("lowercase letters, digits, '-' and '_'")
	name := widget.NewEntryWithData(t.vm.Name)
	userData := widget.NewEntryWithData(t.vm.UserData)
	personName := widget.NewEntryWithData(t.vm.PersonName)
	models := append([]string{defaultModel}, requests.RecognitionModels()...)
	recognitionModel := widget.NewSelect(models, func(selected string) {
		if selected == defaultModel {
			selected = ""
		}
		_ = t.vm.RecognitionModel.Set(selected)
	})
	recognitionModel.SetSelectedIndex(0)

	refresh := binding.NewDataListener(t.refreshPreview)
	for _, b := range []binding.String{t.vm.GroupID, t.vm.Name, t.vm.UserData, t.vm.PersonName, t.vm.RecognitionModel} {
		b.AddListener(refresh)
	}

	runBtn := widget.NewButton("Run", t.Run)
	runBtn.Importance = widget.HighImportance
	listBtn := widget.NewButton("Refresh Groups", func() { t.run(t.vm.List) })
	t.vm.Loading.AddListener(binding.NewDataListener(func() {
		if busy, _ := t.vm.Loading.Get(); busy {
			runBtn.Disable()
			listBtn.Disable()
			return
		}
		runBtn.Enable()
		listBtn.Enable()
	}))

	form := widget.NewForm(
		widget.NewFormItem("Operation", t.opSelect),
		widget.NewFormItem("Group ID", groupID),
		widget.NewFormItem("Name", name),
		widget.NewFormItem("User Data", userData),
		widget.NewFormItem("Recognition Model", recognitionModel),
		widget.NewFormItem("Person Name", personName),
	)

	resultPanel := response.NewPanel(t.vm.Result, t.vm.Error, t.vm.Loading)
	resultPanel.SetOnErrorDetails(func() {
		if err := t.vm.LastError(); err != nil && details != nil {
			details(err)
		}
	})
	groupsPanel := response.NewPanel(t.vm.Groups, binding.NewString(), t.vm.Loading)

	left := container.NewBorder(
		container.NewVBox(form, container.NewHBox(runBtn, listBtn), t.preview),
		nil, nil, nil,
		resultPanel,
	)
	right := container.NewBorder(widget.NewLabel("Person Groups"), nil, nil, nil, groupsPanel)

	split := container.NewHSplit(left, right)
	split.SetOffset(0.6)
	t.content = split
}

// selectedOp returns the operation chosen in the selector.
func (t *PersonGroupTab) selectedOp() model.PersonGroupOp {
	if t.opSelect.Selected == "" {
		return model.OpListGroups
	}
	return model.PersonGroupOp(t.opSelect.Selected)
}

func (t *PersonGroupTab) refreshPreview() {
	if t.preview == nil || t.opSelect == nil {
		return
	}
	t.preview.SetRequest(t.vm.RequestFor(t.selectedOp()))
}

// Run executes the selected operation.
func (t *PersonGroupTab) Run() {
	op := t.selectedOp()
	t.run(func(ctx context.Context) { t.vm.Run(ctx, op) })
}

// CreateRenderer implements fyne.Widget.
func (t *PersonGroupTab) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.content)
}
