// Package rest implements service.Service and auth.API against the task
// backend's REST contract.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"taskman/internal/auth"
	"taskman/internal/config"
	"taskman/internal/logging"
	"taskman/internal/service"
)

const (
	authPath  = "/auth"
	tasksPath = "/api/tasks"

	// maxErrorBody caps how much of an error response is read.
	maxErrorBody = 64 << 10

	// genericServerMessage is used when an error response carries no message.
	genericServerMessage = "Server error"
)

// Client implements service.Service and auth.API over HTTP.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	timeout time.Duration
}

// New creates a client for cfg.BaseURL whose requests carry the credential
// held in store.
func New(cfg *config.Config, store auth.Store) (*Client, error) {
	httpClient := &http.Client{Transport: auth.NewTransport(store, http.DefaultTransport)}
	c, err := NewWithHTTPClient(cfg.BaseURL, httpClient)
	if err != nil {
		return nil, err
	}
	c.timeout = cfg.Timeout.Duration
	return c, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}
	return &Client{
		baseURL: u,
		http:    httpClient,
		timeout: config.DefaultTimeout,
	}, nil
}

// do sends a request with an optional JSON body and decodes a JSON response
// into out when out is non-nil. Non-2xx responses become *service.ServerError;
// transport failures become *service.NetworkError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	logger := logging.FromContext(ctx)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Debug("request failed", "method", method, "path", path, "err", err)
		return wrapTransportError(err)
	}
	defer resp.Body.Close()

	logger.Debug("request", "method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	switch dst := out.(type) {
	case *string:
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return &service.NetworkError{Err: err}
		}
		*dst = strings.TrimSpace(string(data))
		return nil
	default:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &service.NetworkError{Err: fmt.Errorf("decode response: %w", err)}
		}
		return nil
	}
}

// decodeError extracts a user-facing message from an error response.
// Accepts {"message": "..."}, {"error": "..."} or a plain-text body.
func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &service.ServerError{
		Status:  resp.StatusCode,
		Message: errorMessage(data),
	}
}

func errorMessage(data []byte) string {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if strings.HasPrefix(text, "{") {
		if err := json.Unmarshal([]byte(text), &payload); err != nil {
			return genericServerMessage
		}
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
		return genericServerMessage
	}
	if strings.HasPrefix(text, "<") {
		// HTML error pages carry nothing worth showing.
		return genericServerMessage
	}
	return text
}

func wrapTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &service.NetworkError{Err: errors.New("request timed out")}
	}
	return &service.NetworkError{Err: err}
}
