package codify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/codifyhq/termcodify/infra/auth"
)

// Client is a thin HTTP wrapper for the Codify API.
// It handles base URL construction, bearer token injection, request ids,
// and failure classification.
type Client struct {
	baseURL       string
	tokenProvider auth.TokenProvider
	http          *http.Client
	log           *slog.Logger
}

// NewClient creates a Codify API client.
func NewClient(baseURL string, tp auth.TokenProvider, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL:       baseURL,
		tokenProvider: tp,
		http:          &http.Client{Timeout: 15 * time.Second},
		log:           log,
	}
}

// Get performs an authenticated GET request.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post performs an authenticated POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// Patch performs an authenticated PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPatch, path, body)
}

// Delete performs an authenticated DELETE request.
func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	token, err := c.tokenProvider.AccessToken()
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Err: err}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &APIError{Kind: KindNetwork, Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	reqID := uuid.NewString()
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Err: err, RequestID: reqID}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-Id", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("gateway request failed", "method", method, "path", path, "request_id", reqID, "err", err)
		return nil, &APIError{Kind: KindNetwork, Err: err, RequestID: reqID}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn("gateway response unreadable", "method", method, "path", path, "request_id", reqID, "err", err)
		return nil, &APIError{Kind: KindNetwork, Err: err, RequestID: reqID}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			Status:    resp.StatusCode,
			Message:   serverMessage(data, resp.StatusCode),
			RequestID: reqID,
		}
		if resp.StatusCode >= 500 {
			apiErr.Kind = KindServer
		} else {
			apiErr.Kind = KindValidation
		}
		c.log.Warn("gateway call rejected",
			"method", method, "path", path, "status", resp.StatusCode, "request_id", reqID, "message", apiErr.Message)
		return nil, apiErr
	}

	return data, nil
}

// serverMessage pulls the backend's {"message": ...} error body, falling
// back to the HTTP status text.
func serverMessage(data []byte, status int) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return http.StatusText(status)
}
