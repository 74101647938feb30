package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shhac/cogview/internal/domain"
	"github.com/shhac/cogview/internal/logging"
	"github.com/shhac/cogview/internal/requests"
)

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(logging.NewNopLogger(), WithHTTPClient(srv.Client()))
}

func TestExecute_Success(t *testing.T) {
	var gotMethod, gotPath, gotQuery, gotKey, gotContentType, gotBody string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotKey = r.Header.Get("Ocp-Apim-Subscription-Key")
		gotContentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"faceId":"abc"}]`))
	}))
	defer srv.Close()

	req := requests.DetectFaces("https://example.com/face.jpg", requests.DefaultDetectOptions())
	cfg := domain.ServiceConfig{Endpoint: srv.URL + "/", Key: "secret-key", Configured: true}

	before := testutil.ToFloat64(requestsTotal.WithLabelValues("face", "200"))

	body, err := newTestClient(srv).Execute(context.Background(), req, cfg)
	require.NoError(t, err)

	assert.Equal(t, `[{"faceId":"abc"}]`, body)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/face/v1.0/detect", gotPath)
	assert.Equal(t, "detectionModel=detection_01&recognitionModel=recognition_03&returnFaceId=true&returnFaceLandmarks=false", gotQuery)
	assert.Equal(t, "secret-key", gotKey)
	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"url":"https://example.com/face.jpg"}`, gotBody)
	assert.Equal(t, before+1, testutil.ToFloat64(requestsTotal.WithLabelValues("face", "200")))
}

func TestExecute_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	body, err := newTestClient(srv).Execute(context.Background(),
		requests.TrainPersonGroup("family"),
		domain.ServiceConfig{Endpoint: srv.URL, Key: "k", Configured: true})

	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestExecute_APIErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   domain.APIError
	}{
		{
			name:   "nested error",
			status: http.StatusNotFound,
			body:   `{"error":{"code":"PersonGroupNotFound","message":"Person group 'family' is not found."}}`,
			want:   domain.APIError{StatusCode: 404, Code: "PersonGroupNotFound", Message: "Person group 'family' is not found."},
		},
		{
			name:   "flat error",
			status: http.StatusBadRequest,
			body:   `{"code":"BadRequest","message":"Invalid request"}`,
			want:   domain.APIError{StatusCode: 400, Code: "BadRequest", Message: "Invalid request"},
		},
		{
			name:   "plain text",
			status: http.StatusBadGateway,
			body:   "upstream unavailable",
			want:   domain.APIError{StatusCode: 502, Code: "502", Message: "upstream unavailable"},
		},
		{
			name:   "empty body",
			status: http.StatusUnauthorized,
			body:   "",
			want:   domain.APIError{StatusCode: 401, Code: "401", Message: "Unauthorized"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv).Execute(context.Background(),
				requests.GetPersonGroup("family"),
				domain.ServiceConfig{Endpoint: srv.URL, Key: "k", Configured: true})

			var apiErr *domain.APIError
			require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
			assert.Equal(t, tt.want, *apiErr)
		})
	}
}

func TestExecute_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(logging.NewNopLogger()).Execute(context.Background(),
		requests.ListPersonGroups("", 0),
		domain.ServiceConfig{Endpoint: url, Key: "k", Configured: true})

	require.Error(t, err)
	var apiErr *domain.APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestExecute_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv).Execute(ctx,
		requests.ListPersonGroups("", 0),
		domain.ServiceConfig{Endpoint: srv.URL, Key: "k", Configured: true})

	assert.ErrorIs(t, err, context.Canceled)
}
