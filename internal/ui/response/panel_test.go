package response

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestPanel_ShowsBodyAndError(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	body := binding.NewString()
	errText := binding.NewString()
	p := NewPanel(body, errText, binding.NewBool())

	_ = body.Set(`{"documents":[]}`)
	assert.Eventually(t, func() bool {
		return p.raw.Text == `{"documents":[]}`
	}, time.Second, 10*time.Millisecond)

	_ = errText.Set("Face API configuration is not set")
	assert.Eventually(t, func() bool {
		return p.contentContainer.Objects[0] == p.errorContent &&
			p.errorLabel.Text == "Face API configuration is not set"
	}, time.Second, 10*time.Millisecond)

	_ = errText.Set("")
	assert.Eventually(t, func() bool {
		return p.contentContainer.Objects[0] == p.responseContent
	}, time.Second, 10*time.Millisecond)
}

func TestPanel_ErrorDetails(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	p := NewPanel(binding.NewString(), binding.NewString(), binding.NewBool())
	assert.False(t, p.detailsBtn.Visible())

	called := false
	p.SetOnErrorDetails(func() { called = true })
	assert.True(t, p.detailsBtn.Visible())

	test.Tap(p.detailsBtn)
	assert.True(t, called)
}
