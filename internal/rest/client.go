// Package rest executes request descriptors against Cognitive Services endpoints.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shhac/cogview/internal/domain"
	"github.com/shhac/cogview/internal/logging"
)

const (
	subscriptionKeyHeader = "Ocp-Apim-Subscription-Key"
	defaultUserAgent      = "cogview"

	// maxResponseSize caps how much of a response body is read (10 MB).
	maxResponseSize = 10 * 1024 * 1024
)

// Client sends request descriptors over HTTP using a service configuration.
type Client struct {
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. Useful for testing with httptest.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a new REST client.
func NewClient(logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  defaultUserAgent,
		logger:     logger,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Execute performs the request and returns the raw response body.
//
// Non-2xx responses are returned as *domain.APIError. Transport failures are
// wrapped and returned as-is.
func (c *Client) Execute(ctx context.Context, req domain.Request, cfg domain.ServiceConfig) (string, error) {
	service := string(req.Service())
	target := req.URL(cfg.Endpoint)

	c.logger.Debug("executing request",
		slog.String("method", req.Method),
		slog.String("url", target),
		slog.String("key", logging.Redact(cfg.Key)),
	)

	var body io.Reader
	if req.HasBody() {
		body = strings.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set(subscriptionKeyHeader, cfg.Key)
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Accept", domain.ContentTypeJSON)
	if req.HasBody() {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	duration := time.Since(start)
	requestDuration.WithLabelValues(service).Observe(duration.Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(service, "transport_error").Inc()
		c.logger.Error("request failed",
			slog.String("method", req.Method),
			slog.String("path", req.Path),
			slog.Any("error", err),
		)
		return "", fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	defer resp.Body.Close()

	requestsTotal.WithLabelValues(service, strconv.Itoa(resp.StatusCode)).Inc()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseAPIError(resp.StatusCode, data)
		c.logger.Warn("api returned error",
			slog.String("path", req.Path),
			slog.Int("status", resp.StatusCode),
			slog.String("code", apiErr.Code),
		)
		return "", apiErr
	}

	c.logger.Debug("request completed",
		slog.String("path", req.Path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", duration),
		slog.Int("size", len(data)),
	)

	return string(data), nil
}

// apiErrorEnvelope covers both error shapes returned by the services:
// Face and Text Analytics v3 nest the payload under "error", v2 returns it flat.
type apiErrorEnvelope struct {
	Error   *domain.APIError `json:"error"`
	Code    string           `json:"code"`
	Message string           `json:"message"`
}

func parseAPIError(status int, body []byte) *domain.APIError {
	var env apiErrorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		switch {
		case env.Error != nil && (env.Error.Code != "" || env.Error.Message != ""):
			env.Error.StatusCode = status
			return env.Error
		case env.Code != "" || env.Message != "":
			return &domain.APIError{StatusCode: status, Code: env.Code, Message: env.Message}
		}
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &domain.APIError{
		StatusCode: status,
		Code:       strconv.Itoa(status),
		Message:    msg,
	}
}
