package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"time"
	"unicode/utf8"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	apierrors "github.com/funland/funland/internal/errors"
	"github.com/funland/funland/internal/models"
)

// Chat sends message to the chat endpoint and returns the reply text.
//
// Failures come back as *errors.NetworkError (or *errors.TimeoutError),
// *errors.APIError for a non-2xx status, and a ParseError matching
// errors.ErrNoReply when a 2xx body has no reply.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	if message == "" {
		return "", apierrors.ErrEmptyMessage
	}

	payload, err := json.Marshal(models.ChatRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("failed to build payload: %w", err)
	}

	endpoint := c.ChatURL()
	start := time.Now()
	c.logger.Debug("sending chat request",
		zap.String("endpoint", endpoint),
		zap.Int("message_len", len(message)))

	status, body, err := c.do(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		c.logger.Warn("chat request failed", zap.String("endpoint", endpoint), zap.Error(err))
		return "", err
	}

	c.logger.Debug("chat response received",
		zap.Int("status", status),
		zap.Duration("elapsed", time.Since(start)))

	if status < 200 || status > 299 {
		return "", apierrors.NewAPIErrorWithBody(status, endpoint, extractDetail(body), truncate(string(body), 4096))
	}

	return parseReply(body)
}

// Health checks that the backend is up
func (c *Client) Health(ctx context.Context) error {
	endpoint := c.HealthURL()

	status, body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	if status < 200 || status > 299 {
		return apierrors.NewAPIErrorWithBody(status, endpoint, extractDetail(body), truncate(string(body), 4096))
	}

	if got := gjson.GetBytes(body, models.FieldStatus).String(); got != models.StatusOK {
		return apierrors.NewParseError(fmt.Sprintf("unexpected health status %q", got), models.FieldStatus)
	}
	return nil
}

// do performs one request and returns the status and (bounded) body
func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte) (int, []byte, error) {
	if c.IsClosed() {
		return 0, nil, apierrors.ErrClientClosed
	}

	if timeout := c.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, classifyTransportError(ctx, endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return resp.StatusCode, nil, classifyTransportError(ctx, endpoint, err)
	}

	return resp.StatusCode, body, nil
}

// parseReply extracts the reply text from a 2xx body
func parseReply(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", apierrors.NewParseError("response is not valid JSON", "")
	}

	result := gjson.GetBytes(body, models.FieldResponse)
	if result.Type != gjson.String || result.Str == "" {
		return "", apierrors.NewParseError("no reply field in response", models.FieldResponse)
	}

	return result.Str, nil
}

// extractDetail returns the "detail" field of an error body. Non-string
// details (e.g. validation error lists) are returned as raw JSON.
func extractDetail(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}

	detail := gjson.GetBytes(body, models.FieldDetail)
	switch {
	case !detail.Exists(), detail.Type == gjson.Null:
		return ""
	case detail.Type == gjson.String:
		return detail.Str
	default:
		return detail.Raw
	}
}

func classifyTransportError(ctx context.Context, endpoint string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return apierrors.NewTimeoutError(endpoint)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apierrors.NewTimeoutError(endpoint)
	}

	return apierrors.NewNetworkError("request", endpoint, err)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
