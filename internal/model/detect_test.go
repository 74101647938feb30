package model

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shhac/cogview/internal/commands"
	"github.com/shhac/cogview/internal/domain"
	"github.com/shhac/cogview/internal/logging"
	"github.com/shhac/cogview/internal/mediator"
)

func TestFaceDetectViewModel_Request(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	vm := NewFaceDetectViewModel(newFakeService().mediator(), logging.NewNopLogger())
	_ = vm.ImageURL.Set("https://example.com/face.jpg")
	_ = vm.ReturnLandmarks.Set(true)
	vm.SetAttributes([]string{"age", "emotion"})

	req := vm.Request()
	assert.Equal(t, "/face/v1.0/detect", req.Path)
	assert.Equal(t, "true", req.Query["returnFaceLandmarks"])
	assert.Equal(t, "age,emotion", req.Query["returnFaceAttributes"])
	assert.JSONEq(t, `{"url":"https://example.com/face.jpg"}`, req.Body)
}

func TestFaceDetectViewModel_Detect(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	svc := newFakeService()
	svc.responses["/face/v1.0/detect"] = `[{"faceId":"c5c24a82"}]`
	vm := NewFaceDetectViewModel(svc.mediator(), logging.NewNopLogger())
	_ = vm.ImageURL.Set("https://example.com/face.jpg")

	vm.Detect(context.Background())

	require.Len(t, svc.sent, 1)
	result, _ := vm.Result.Get()
	assert.Equal(t, `[{"faceId":"c5c24a82"}]`, result)
}

func TestFaceDetectViewModel_DetectIgnoresOverlappingCalls(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	entered := make(chan struct{})
	release := make(chan struct{})
	var calls, inFlight, peak atomic.Int32

	m := mediator.New()
	mediator.Register(m, func(_ context.Context, _ commands.GetServiceConfig) (domain.ServiceConfig, error) {
		return domain.ServiceConfig{Endpoint: "https://example.com", Key: "k", Configured: true}, nil
	})
	mediator.Register(m, func(_ context.Context, _ commands.ExecuteRequest) (string, error) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		if n > peak.Load() {
			peak.Store(n)
		}
		if calls.Add(1) == 1 {
			close(entered)
			<-release
		}
		return `[]`, nil
	})

	vm := NewFaceDetectViewModel(m, logging.NewNopLogger())
	_ = vm.ImageURL.Set("https://example.com/face.jpg")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		vm.Detect(context.Background())
	}()
	<-entered

	vm.Detect(context.Background())
	loading, _ := vm.Loading.Get()
	assert.True(t, loading, "the first call still owns the view model")

	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int32(1), peak.Load())
	loading, _ = vm.Loading.Get()
	assert.False(t, loading)

	vm.Detect(context.Background())
	assert.Equal(t, int32(2), calls.Load(), "the view model accepts work again once idle")
}
