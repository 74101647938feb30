package model

import (
	"context"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2/data/binding"

	"github.com/shhac/cogview/internal/domain"
	"github.com/shhac/cogview/internal/mediator"
	"github.com/shhac/cogview/internal/requests"
)

// FaceDetectViewModel holds the face detection form and its result.
type FaceDetectViewModel struct {
	*viewModel

	ImageURL        binding.String
	ReturnLandmarks binding.Bool
	Result          binding.String

	attrMu     sync.Mutex
	attributes []string
}

// NewFaceDetectViewModel creates a face detection view model.
func NewFaceDetectViewModel(m *mediator.Mediator, logger *slog.Logger) *FaceDetectViewModel {
	return &FaceDetectViewModel{
		viewModel:       newViewModel(domain.ServiceFace, m, logger),
		ImageURL:        binding.NewString(),
		ReturnLandmarks: binding.NewBool(),
		Result:          binding.NewString(),
	}
}

// SetAttributes selects which face attributes the service returns.
func (vm *FaceDetectViewModel) SetAttributes(attrs []string) {
	vm.attrMu.Lock()
	defer vm.attrMu.Unlock()
	vm.attributes = append([]string(nil), attrs...)
}

// Request rebuilds the detect descriptor from the current field values.
func (vm *FaceDetectViewModel) Request() domain.Request {
	imageURL, _ := vm.ImageURL.Get()
	landmarks, _ := vm.ReturnLandmarks.Get()

	opts := requests.DefaultDetectOptions()
	opts.ReturnFaceLandmarks = landmarks

	vm.attrMu.Lock()
	opts.Attributes = append([]string(nil), vm.attributes...)
	vm.attrMu.Unlock()

	return requests.DetectFaces(imageURL, opts)
}

// Detect runs face detection on the image URL.
func (vm *FaceDetectViewModel) Detect(ctx context.Context) {
	done, ok := vm.begin()
	if !ok {
		return
	}
	defer done()

	cfg, ok := vm.config(ctx)
	if !ok {
		return
	}
	if body, ok := vm.execute(ctx, vm.Request(), cfg); ok {
		_ = vm.Result.Set(body)
	}
}
