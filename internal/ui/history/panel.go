package history

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/shhac/cogview/internal/domain"
	"github.com/shhac/cogview/internal/ui/components"
	"github.com/shhac/cogview/internal/ui/response"
)

const pathHintRunes = 48

// Panel lists recorded requests with text and status filters.
type Panel struct {
	widget.BaseWidget

	source binding.UntypedList // []domain.HistoryEntry from the app state
	logger *slog.Logger
	window fyne.Window

	listWidget  *widget.List
	statusLabel *widget.Label
	filterEntry *widget.Entry

	mu           sync.Mutex
	filterQuery  string
	statusFilter string // "", "success" or "error"
	total        int
	visible      []domain.HistoryEntry

	onClear   func() error
	onRefresh func()

	content *fyne.Container
}

// NewPanel creates a history panel over the state's history list. onRefresh
// reloads the list from storage; onClear deletes every entry.
func NewPanel(source binding.UntypedList, logger *slog.Logger, window fyne.Window, onRefresh func(), onClear func() error) *Panel {
	p := &Panel{
		source:    source,
		logger:    logger,
		window:    window,
		onRefresh: onRefresh,
		onClear:   onClear,
	}
	p.ExtendBaseWidget(p)
	p.buildUI()
	source.AddListener(binding.NewDataListener(p.applyFilter))
	return p
}

func (p *Panel) buildUI() {
	p.statusLabel = widget.NewLabel("History (0)")

	refreshBtn := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), func() {
		if p.onRefresh != nil {
			p.onRefresh()
		}
	})
	clearBtn := widget.NewButton("Clear All", p.handleClearAll)

	p.filterEntry = widget.NewEntry()
	p.filterEntry.SetPlaceHolder("Filter by path, body or error...")
	p.filterEntry.OnChanged = func(query string) {
		p.mu.Lock()
		p.filterQuery = strings.ToLower(query)
		p.mu.Unlock()
		p.applyFilter()
	}

	statusSelect := widget.NewSelect([]string{"All", "Success", "Error"}, func(selected string) {
		p.mu.Lock()
		switch selected {
		case "Success":
			p.statusFilter = "success"
		case "Error":
			p.statusFilter = "error"
		default:
			p.statusFilter = ""
		}
		p.mu.Unlock()
		p.applyFilter()
	})
	statusSelect.SetSelected("All")

	p.listWidget = widget.NewList(
		func() int {
			p.mu.Lock()
			defer p.mu.Unlock()
			return len(p.visible)
		},
		func() fyne.CanvasObject {
			timeLabel := widget.NewLabel("")
			statusIcon := widget.NewIcon(theme.ConfirmIcon())
			durationLabel := widget.NewLabel("")
			methodLabel := widget.NewLabel("")
			methodLabel.TextStyle = fyne.TextStyle{Bold: true}
			return container.NewHBox(statusIcon, timeLabel, durationLabel, methodLabel, components.NewHintLabel("", pathHintRunes))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			entry, ok := p.entryAt(id)
			if !ok {
				return
			}
			row := obj.(*fyne.Container)
			row.Objects[0].(*widget.Icon).SetResource(statusResource(entry.Status))
			row.Objects[1].(*widget.Label).SetText(entry.Timestamp.Format("15:04:05"))
			row.Objects[2].(*widget.Label).SetText(fmt.Sprintf("%dms", entry.Duration.Milliseconds()))
			row.Objects[3].(*widget.Label).SetText(entry.Method)
			row.Objects[4].(*components.HintLabel).SetText(entry.Path)
		},
	)
	p.listWidget.OnSelected = func(id widget.ListItemID) {
		if entry, ok := p.entryAt(id); ok {
			showDetails(entry, p.window)
		}
		p.listWidget.UnselectAll()
	}

	header := container.NewVBox(
		container.NewBorder(nil, nil, p.statusLabel, container.NewHBox(refreshBtn, clearBtn)),
		container.NewBorder(nil, nil, nil, statusSelect, p.filterEntry),
	)
	p.content = container.NewBorder(header, nil, nil, nil, p.listWidget)
}

func statusResource(status string) fyne.Resource {
	if status == "success" {
		return theme.ConfirmIcon()
	}
	return theme.ErrorIcon()
}

func (p *Panel) entryAt(id widget.ListItemID) (domain.HistoryEntry, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if id < 0 || id >= len(p.visible) {
		return domain.HistoryEntry{}, false
	}
	return p.visible[id], true
}

// matches reports whether entry passes the status and text filters.
func matches(entry domain.HistoryEntry, query, status string) bool {
	if status != "" && entry.Status != status {
		return false
	}
	if query == "" {
		return true
	}
	for _, field := range []string{entry.Path, entry.Request, entry.Error} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// applyFilter rebuilds the visible entries from the source list.
func (p *Panel) applyFilter() {
	items, err := p.source.Get()
	if err != nil {
		p.logger.Error("failed to read history list", slog.Any("error", err))
		return
	}

	p.mu.Lock()
	p.total = len(items)
	p.visible = p.visible[:0]
	for _, item := range items {
		entry, ok := item.(domain.HistoryEntry)
		if ok && matches(entry, p.filterQuery, p.statusFilter) {
			p.visible = append(p.visible, entry)
		}
	}
	label := fmt.Sprintf("History (%d)", p.total)
	if p.filterQuery != "" || p.statusFilter != "" {
		label = fmt.Sprintf("History (%d of %d)", len(p.visible), p.total)
	}
	p.mu.Unlock()

	fyne.Do(func() {
		p.statusLabel.SetText(label)
		p.listWidget.Refresh()
	})
}

func (p *Panel) handleClearAll() {
	dialog.ShowConfirm("Clear History",
		"Are you sure you want to clear all history entries?",
		func(confirmed bool) {
			if !confirmed || p.onClear == nil {
				return
			}
			if err := p.onClear(); err != nil {
				p.logger.Error("failed to clear history", slog.Any("error", err))
				dialog.ShowError(err, p.window)
				return
			}
			p.logger.Info("history cleared")
		},
		p.window,
	)
}

// CreateRenderer implements fyne.Widget.
func (p *Panel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.content)
}

// showDetails opens a dialog with the full request and response of entry.
func showDetails(entry domain.HistoryEntry, window fyne.Window) {
	req := response.NewReadOnlyMultiLineEntry()
	req.SetText(response.PrettyJSON(entry.Request))
	res := response.NewReadOnlyMultiLineEntry()
	if entry.Error != "" {
		res.SetText(entry.Error)
	} else {
		res.SetText(response.PrettyJSON(entry.Response))
	}

	info := widget.NewLabel(fmt.Sprintf("%s %s\n%s · %s · %dms",
		entry.Method, entry.Path,
		entry.Timestamp.Format("2006-01-02 15:04:05"),
		entry.Status, entry.Duration.Milliseconds()))
	info.Wrapping = fyne.TextWrapBreak

	tabs := container.NewAppTabs(
		container.NewTabItem("Response", res),
		container.NewTabItem("Request", req),
	)
	d := dialog.NewCustom("History Entry", "Close", container.NewBorder(info, nil, nil, nil, tabs), window)
	d.Resize(fyne.NewSize(640, 480))
	d.Show()
}
