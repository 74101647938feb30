package errors

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	apperrors "github.com/shhac/cogview/internal/errors"
)

// ShowError classifies err and shows a dialog with recovery suggestions and
// collapsed technical details. When the classification offers Retry and
// onRetry is non-nil, the dialog gets a Retry button.
func ShowError(err error, window fyne.Window, onRetry func()) {
	uiErr := apperrors.ClassifyError(err)
	if uiErr == nil {
		return
	}

	content := buildContent(uiErr)

	var d dialog.Dialog
	if onRetry != nil && uiErr.HasAction("Retry") {
		d = dialog.NewCustomConfirm(uiErr.Title, "Retry", "Close", content, func(retry bool) {
			if retry {
				onRetry()
			}
		}, window)
	} else {
		d = dialog.NewCustom(uiErr.Title, "Close", content, window)
	}
	d.Resize(fyne.NewSize(500, 360))
	d.Show()
}

// buildContent lays out the message, recovery suggestions and details.
// Labels wrap so long messages never widen the dialog.
func buildContent(uiErr *apperrors.UIError) *fyne.Container {
	msg := widget.NewLabel(uiErr.Message)
	msg.Wrapping = fyne.TextWrapWord
	content := container.NewVBox(msg)

	if len(uiErr.Recovery) > 0 {
		content.Add(widget.NewSeparator())
		content.Add(widget.NewLabel("You can:"))
		for _, s := range uiErr.Recovery {
			lbl := widget.NewLabel("• " + s)
			lbl.Wrapping = fyne.TextWrapWord
			content.Add(lbl)
		}
	}

	if uiErr.Details != "" {
		details := widget.NewLabel(uiErr.Details)
		details.Wrapping = fyne.TextWrapWord
		content.Add(widget.NewAccordion(widget.NewAccordionItem("Technical Details", details)))
	}
	return content
}
