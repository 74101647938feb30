package components

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "short", truncateRunes("short", 8))
	assert.Equal(t, "/face/v…", truncateRunes("/face/v1.0/persongroups", 8))
	assert.Equal(t, "ünïcödé…", truncateRunes("ünïcödéé!", 8))
	assert.Equal(t, "anything", truncateRunes("anything", 0))
}

func TestHintLabel_SetText(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	h := NewHintLabel("/text/analytics/v2.1/sentiment", 12)
	assert.Equal(t, "/text/analy…", h.label.Text)

	h.SetText("/face")
	assert.Equal(t, "/face", h.label.Text)
	assert.Equal(t, "/face", h.fullText)
}
