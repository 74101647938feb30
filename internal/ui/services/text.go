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

// TextTab runs Text Analytics operations on a single document.
type TextTab struct {
	widget.BaseWidget

	vm      *model.TextAnalysisViewModel
	run     Runner
	details ErrorDetails

	langSelect *widget.Select
	versions   *widget.RadioGroup
	opTabs     *container.AppTabs
	previews   map[string]*request.Preview

	content fyne.CanvasObject
}

// NewTextTab creates the Text Analytics tab.
func NewTextTab(vm *model.TextAnalysisViewModel, run Runner, details ErrorDetails) *TextTab {
	t := &TextTab{
		vm:       vm,
		run:      run,
		details:  details,
		previews: make(map[string]*request.Preview),
	}
	t.ExtendBaseWidget(t)
	t.buildUI()
	return t
}

func (t *TextTab) buildUI() {
	textEntry := widget.NewMultiLineEntry()
	textEntry.Bind(t.vm.Text)
	textEntry.SetPlaceHolder("Enter text to analyze")
	textEntry.Wrapping = fyne.TextWrapWord
	textEntry.SetMinRowsVisible(5)

	langs := model.Languages()
	names := make([]string, len(langs))
	for i, l := range langs {
		names[i] = l.Name + " (" + l.Tag + ")"
	}
	t.langSelect = widget.NewSelect(names, func(selected string) {
		for i, n := range names {
			if n == selected {
				t.vm.SetLanguage(langs[i].Tag)
				return
			}
		}
	})
	t.langSelect.SetSelectedIndex(0)

	versionOpts := make([]string, 0, len(requests.APIVersions()))
	for _, v := range requests.APIVersions() {
		versionOpts = append(versionOpts, string(v))
	}
	t.versions = widget.NewRadioGroup(versionOpts, func(selected string) {
		if selected == "" {
			return
		}
		t.vm.SetAPIVersion(requests.APIVersion(selected))
		t.rebuildOpTabs()
	})
	t.versions.Horizontal = true
	t.versions.Required = true
	t.versions.Selected = string(t.vm.Version())

	analyzeBtn := widget.NewButton("Analyze All", func() {
		t.run(t.vm.Analyze)
	})
	analyzeBtn.Importance = widget.HighImportance
	clearBtn := widget.NewButton("Clear", t.vm.ClearResults)

	loading := widget.NewProgressBarInfinite()
	loading.Stop()
	loading.Hide()
	t.vm.Loading.AddListener(binding.NewDataListener(func() {
		if busy, _ := t.vm.Loading.Get(); busy {
			analyzeBtn.Disable()
			loading.Start()
			loading.Show()
			return
		}
		analyzeBtn.Enable()
		loading.Stop()
		loading.Hide()
	}))

	controls := container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Language", t.langSelect),
			widget.NewFormItem("API Version", t.versions),
		),
		container.NewHBox(analyzeBtn, clearBtn),
		loading,
	)

	t.opTabs = container.NewAppTabs()
	t.rebuildOpTabs()

	refresh := binding.NewDataListener(t.refreshPreviews)
	t.vm.Text.AddListener(refresh)
	t.vm.Language.AddListener(refresh)

	top := container.NewBorder(nil, controls, nil, nil, textEntry)
	t.content = container.NewVSplit(top, t.opTabs)
}

// rebuildOpTabs recreates one tab per operation offered by the selected version.
func (t *TextTab) rebuildOpTabs() {
	if t.opTabs == nil {
		return
	}
	t.previews = make(map[string]*request.Preview)

	var items []*container.TabItem
	for _, op := range t.vm.Requests() {
		key := op.Key
		preview := request.NewPreview()
		preview.SetRequest(op.Request)
		t.previews[key] = preview

		panel := response.NewPanel(t.vm.Result(key), t.vm.Error, t.vm.Loading)
		panel.SetOnErrorDetails(func() {
			if err := t.vm.LastError(); err != nil && t.details != nil {
				t.details(err)
			}
		})

		runBtn := widget.NewButton("Run "+op.Title, func() {
			t.run(func(ctx context.Context) { t.vm.AnalyzeOne(ctx, key) })
		})

		body := container.NewBorder(container.NewVBox(preview, runBtn), nil, nil, nil, panel)
		items = append(items, container.NewTabItem(op.Title, body))
	}

	t.opTabs.SetItems(items)
}

// refreshPreviews rebuilds each preview from the current field values.
func (t *TextTab) refreshPreviews() {
	for _, op := range t.vm.Requests() {
		if p, ok := t.previews[op.Key]; ok {
			p.SetRequest(op.Request)
		}
	}
}

// Analyze runs every operation.
func (t *TextTab) Analyze() {
	t.run(t.vm.Analyze)
}

// CreateRenderer implements fyne.Widget.
func (t *TextTab) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.content)
}
