package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"tvGuideBff/internal/shared/logging"
	"tvGuideBff/internal/shared/metrics"
)

var (
	// ErrUpstreamUnavailable covers network failures reaching the data service.
	ErrUpstreamUnavailable = errors.New("data service unavailable")
	// ErrUpstreamTimeout is returned when the call exceeded the configured deadline.
	ErrUpstreamTimeout = errors.New("data service timeout")
	// ErrUpstreamStatus is returned for any response status other than 200.
	ErrUpstreamStatus = errors.New("data service unexpected status")
)

// Client calls the adapter/data service and unwraps its {"data": ...} envelope.
// It never retries: a failed call surfaces immediately to the caller.
type Client struct {
	baseURL string
	client  *http.Client
	metrics *metrics.Metrics
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

func NewClient(baseURL string, timeout time.Duration, client *http.Client, m *metrics.Metrics) *Client {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = "http://localhost:3040"
	}
	trimmed = strings.TrimRight(trimmed, "/")
	if client == nil {
		client = &http.Client{Timeout: timeoutOrDefault(timeout)}
	} else if timeout > 0 {
		client.Timeout = timeout
	}
	return &Client{baseURL: trimmed, client: client, metrics: m}
}

// URL returns the absolute URL for an upstream path.
func (c *Client) URL(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// Get performs one GET and returns the raw "data" member of the response.
func (c *Client) Get(ctx context.Context, operation, path string) (json.RawMessage, error) {
	return c.do(ctx, operation, http.MethodGet, path, nil)
}

// Send performs one write (POST/PUT/DELETE) with a JSON body and returns the raw "data" member.
func (c *Client) Send(ctx context.Context, operation, method, path string, body any) (json.RawMessage, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s body: %w", operation, err)
	}
	return c.do(ctx, operation, method, path, encoded)
}

func (c *Client) do(ctx context.Context, operation, method, path string, body []byte) (json.RawMessage, error) {
	logger := logging.FromContext(ctx)
	target := c.URL(path)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		logger.Error("data service request build failed", slog.String("operation", operation), slog.String("url", target), slog.Any("error", err))
		return nil, fmt.Errorf("%s: build request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set("X-Request-Id", requestID)
	}

	logger.Info("calling data service", slog.String("operation", operation), slog.String("method", method), slog.String("url", target))
	start := time.Now()
	res, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.metrics.ObserveUpstream(operation, metrics.OutcomeTimeout, time.Since(start))
			logger.Error("data service timeout", slog.String("operation", operation), slog.String("url", target), slog.Any("error", err))
			return nil, fmt.Errorf("%s: %w: %w", operation, ErrUpstreamTimeout, err)
		}
		c.metrics.ObserveUpstream(operation, metrics.OutcomeError, time.Since(start))
		logger.Error("data service request error", slog.String("operation", operation), slog.String("url", target), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w: %w", operation, ErrUpstreamUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		c.metrics.ObserveUpstream(operation, metrics.OutcomeStatus, time.Since(start))
		preview, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		logger.Error("data service unexpected status", slog.String("operation", operation), slog.Int("status", res.StatusCode), slog.String("url", target), slog.String("body", strings.TrimSpace(string(preview))))
		return nil, fmt.Errorf("%s: %w %d", operation, ErrUpstreamStatus, res.StatusCode)
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		c.metrics.ObserveUpstream(operation, metrics.OutcomeError, time.Since(start))
		logger.Error("data service body read failed", slog.String("operation", operation), slog.Any("error", err))
		return nil, fmt.Errorf("%s: read body: %w: %w", operation, ErrUpstreamUnavailable, err)
	}
	c.metrics.ObserveUpstream(operation, metrics.OutcomeSuccess, time.Since(start))
	logger.Info("data service response is OK", slog.String("operation", operation))
	logger.Log(ctx, logging.LevelTrace, "data service payload", slog.String("operation", operation), slog.String("body", string(raw)))

	var payload envelope
	if err := json.Unmarshal(raw, &payload); err != nil {
		logger.Warn("data service payload is not an envelope", slog.String("operation", operation), slog.Any("error", err))
		return nil, nil
	}
	return payload.Data, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func timeoutOrDefault(value time.Duration) time.Duration {
	if value <= 0 {
		return 10 * time.Second
	}
	return value
}
