package model

import (
	"context"
	"errors"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shhac/cogview/internal/commands"
	"github.com/shhac/cogview/internal/domain"
	apperrors "github.com/shhac/cogview/internal/errors"
	"github.com/shhac/cogview/internal/logging"
	"github.com/shhac/cogview/internal/mediator"
	"github.com/shhac/cogview/internal/requests"
)

// fakeService stands in for the command handlers.
type fakeService struct {
	configured bool
	responses  map[string]string // path -> body
	err        error
	failPath   string
	sent       []domain.Request
}

func newFakeService() *fakeService {
	return &fakeService{configured: true, responses: map[string]string{}}
}

func (f *fakeService) mediator() *mediator.Mediator {
	m := mediator.New()
	mediator.Register(m, func(_ context.Context, q commands.GetServiceConfig) (domain.ServiceConfig, error) {
		if !f.configured {
			return domain.ServiceConfig{}, nil
		}
		return domain.ServiceConfig{Endpoint: "https://example.com", Key: "k", Configured: true}, nil
	})
	mediator.Register(m, func(_ context.Context, cmd commands.ExecuteRequest) (string, error) {
		f.sent = append(f.sent, cmd.Request)
		if f.err != nil && (f.failPath == "" || f.failPath == cmd.Request.Path) {
			return "", f.err
		}
		return f.responses[cmd.Request.Path], nil
	})
	return m
}

func TestFormatAPIError(t *testing.T) {
	got := FormatAPIError(domain.ServiceFace, &domain.APIError{Code: "PersonGroupNotFound", Message: "Person group is not found."})
	assert.Equal(t, "Face API error code PersonGroupNotFound: \nPerson group is not found.", got)

	got = FormatAPIError(domain.ServiceText, &domain.APIError{Code: "InvalidRequest", Message: "bad"})
	assert.Equal(t, "Text API error code InvalidRequest: \nbad", got)
}

func TestNotConfiguredMessage(t *testing.T) {
	assert.Equal(t, "Face API configuration is not set\n", NotConfiguredMessage(domain.ServiceFace))
	assert.Equal(t, "Text API configuration is not set\n", NotConfiguredMessage(domain.ServiceText))
}

func TestViewModel_NotConfigured(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	svc := newFakeService()
	svc.configured = false
	vm := NewTextAnalysisViewModel(svc.mediator(), logging.NewNopLogger())
	vm.SetText("hello")

	vm.Analyze(context.Background())

	msg, _ := vm.Error.Get()
	assert.Equal(t, "Text API configuration is not set\n", msg)
	assert.ErrorIs(t, vm.LastError(), apperrors.ErrConfigurationNotSet)
	assert.Empty(t, svc.sent, "no request may be sent without configuration")

	loading, _ := vm.Loading.Get()
	assert.False(t, loading)
}

func TestViewModel_OtherErrorUsesDefaultString(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	svc := newFakeService()
	svc.err = errors.New("dial tcp: connection refused")
	vm := NewFaceDetectViewModel(svc.mediator(), logging.NewNopLogger())

	vm.Detect(context.Background())

	msg, _ := vm.Error.Get()
	assert.Equal(t, "dial tcp: connection refused", msg)
}

func TestViewModel_ErrorClearedOnNextRun(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	svc := newFakeService()
	svc.err = &domain.APIError{StatusCode: 400, Code: "InvalidURL", Message: "Invalid image URL."}
	vm := NewFaceDetectViewModel(svc.mediator(), logging.NewNopLogger())

	vm.Detect(context.Background())
	msg, _ := vm.Error.Get()
	assert.Equal(t, "Face API error code InvalidURL: \nInvalid image URL.", msg)

	svc.err = nil
	svc.responses[requests.DetectFaces("", requests.DefaultDetectOptions()).Path] = `[]`
	vm.Detect(context.Background())

	msg, _ = vm.Error.Get()
	assert.Empty(t, msg)
	assert.NoError(t, vm.LastError())
	result, _ := vm.Result.Get()
	assert.Equal(t, `[]`, result)
}

func TestApplicationState(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	s := NewApplicationState(mediator.New(), logging.NewNopLogger())
	require.NotNil(t, s.Text)
	require.NotNil(t, s.PersonGroups)
	require.NotNil(t, s.Detect)

	s.SetActiveProfile(domain.ServiceFace, "prod")
	name, _ := s.ActiveProfiles[domain.ServiceFace].Get()
	assert.Equal(t, "prod", name)

	s.SetHistory([]domain.HistoryEntry{{ID: "a"}, {ID: "b"}})
	assert.Equal(t, 2, s.History.Length())
	item, err := s.History.GetValue(0)
	require.NoError(t, err)
	assert.Equal(t, "a", item.(domain.HistoryEntry).ID)
}
