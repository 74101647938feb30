// Package request renders request descriptors for inspection before they are sent.
package request

import (
	"net/url"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/shhac/cogview/internal/domain"
	"github.com/shhac/cogview/internal/ui/components"
	"github.com/shhac/cogview/internal/ui/response"
)

// Preview shows the method, path, query, body, cost and documentation link of
// a request descriptor.
type Preview struct {
	widget.BaseWidget

	line    *widget.Label
	query   *widget.Label
	body    *response.ReadOnlyEntry
	cost    *widget.Label
	docLink *widget.Hyperlink

	content fyne.CanvasObject
}

// NewPreview creates an empty preview.
func NewPreview() *Preview {
	p := &Preview{
		line:    widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Monospace: true, Bold: true}),
		query:   widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Monospace: true}),
		body:    response.NewReadOnlyMultiLineEntry(),
		cost:    widget.NewLabel(""),
		docLink: widget.NewHyperlink("API reference", nil),
	}
	p.query.Wrapping = fyne.TextWrapBreak
	p.body.SetMinRowsVisible(4)
	p.cost.Importance = widget.LowImportance
	p.docLink.Hide()

	p.content = container.NewVBox(
		p.line,
		p.query,
		components.NewCollapsibleSection("Body", p.body, true),
		container.NewHBox(p.cost, p.docLink),
	)
	p.ExtendBaseWidget(p)
	return p
}

// SetRequest displays req.
func (p *Preview) SetRequest(req domain.Request) {
	p.line.SetText(req.Method + " " + req.Path)

	if q := FormatQuery(req.Query); q != "" {
		p.query.SetText(q)
		p.query.Show()
	} else {
		p.query.Hide()
	}

	body := req.Body
	if req.HasBody() {
		body = "Content-Type: " + req.ContentType + "\n\n" + response.PrettyJSON(req.Body)
	}
	p.body.SetText(body)

	p.cost.SetText("Cost: " + req.Cost)
	if u, err := url.Parse(req.DocURL); err == nil && req.DocURL != "" {
		p.docLink.SetURL(u)
		p.docLink.Show()
	} else {
		p.docLink.Hide()
	}
}

// FormatQuery renders query parameters one per line in key order.
func FormatQuery(query map[string]string) string {
	if len(query) == 0 {
		return ""
	}
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = k + " = " + query[k]
	}
	return strings.Join(lines, "\n")
}

// CreateRenderer implements fyne.Widget.
func (p *Preview) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.content)
}
