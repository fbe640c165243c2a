// Package gateway is the single boundary through which the admin app talks to
// the clinic backend.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"wellness-admin/monitoring"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrDecode         = errors.New("undecodable backend response")
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend error %d", e.StatusCode)
	}
	return fmt.Sprintf("backend error %d: %s", e.StatusCode, e.Message)
}

// BackendMessage returns the message carried by an *APIError in err's chain.
func BackendMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	validate   *validator.Validate
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) check(req any) error {
	if err := c.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
			}
			return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

// call performs one request and decodes a 2xx body into out when out is non-nil.
func (c *Client) call(ctx context.Context, op, method, path string, body, out any) (err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		var apiErr *APIError
		switch {
		case errors.As(err, &apiErr):
			outcome = "backend_error"
		case errors.Is(err, ErrDecode):
			outcome = "decode_error"
		case err != nil:
			outcome = "transport_error"
		}
		monitoring.GatewayRequests.WithLabelValues(op, outcome).Inc()
		monitoring.GatewayDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", op, err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: extractMessage(respBody)}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDecode, op, err)
	}
	return nil
}

// extractMessage pulls a human readable message out of an error body.
func extractMessage(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		text := strings.TrimSpace(string(body))
		if len(text) > 200 || strings.HasPrefix(text, "<") {
			return ""
		}
		return text
	}
	for _, key := range []string{"message", "Message", "title", "error"} {
		if s, ok := payload[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
