package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shhac/cogview/internal/domain"
	"github.com/shhac/cogview/internal/logging"
	"github.com/shhac/cogview/internal/requests"
	"github.com/shhac/cogview/internal/rest"
)

func TestMetricsServer_ExposesRequestMetrics(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"documents":[]}`))
	}))
	defer api.Close()

	logger := logging.NewNopLogger()
	_, err := rest.NewClient(logger).Execute(context.Background(),
		requests.DetectLanguage(requests.VersionStable, "hello"),
		domain.ServiceConfig{Endpoint: api.URL, Key: "k", Configured: true})
	require.NoError(t, err)

	m, err := startMetricsServer("127.0.0.1:0", logger)
	require.NoError(t, err)
	defer func() { assert.NoError(t, m.Close(context.Background())) }()

	resp, err := http.Get("http://" + m.Addr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `cogview_api_requests_total{service="text",status="200"}`)
	assert.Contains(t, string(body), "cogview_api_request_duration_seconds")
}

func TestStartMetricsServer_BadAddress(t *testing.T) {
	_, err := startMetricsServer("not-an-address", logging.NewNopLogger())
	assert.Error(t, err)
}
