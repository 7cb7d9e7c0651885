// Package backend wraps the TechNest backend REST API. Every durable business
// object (carts, wishlists, orders, products, accounts) lives behind this API;
// the gateway only holds session state and re-fetches server truth.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// genericFailure is shown when the backend dies without a structured error.
const genericFailure = "something went wrong, please try again"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a client with a fixed base origin and one long request timeout.
// Calls are never retried; a failure is surfaced to the caller as-is.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// APIError carries a structured error message reported by the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// envelope is the backend's standard response wrapper. Auth endpoints put the
// session token at the top level rather than inside data.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Token   string          `json:"token"`
	Count   int             `json:"count"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func (e *envelope) errorMessage() string {
	if e.Error != "" {
		return e.Error
	}
	if e.Message != "" {
		return e.Message
	}
	return genericFailure
}

func (c *Client) do(ctx context.Context, method, path, token string, body any, out any) (*envelope, error) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.send(req, out)
}

// doMultipart issues a multipart/form-data request. Only the update-details
// endpoint needs this (profile photo upload alongside text fields).
func (c *Client) doMultipart(ctx context.Context, method, path, token string, fields map[string]string, fileField, fileName string, file io.Reader, out any) (*envelope, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("write form field %s: %w", key, err)
		}
	}
	if file != nil {
		part, err := writer.CreateFormFile(fileField, fileName)
		if err != nil {
			return nil, fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(part, file); err != nil {
			return nil, fmt.Errorf("copy form file: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) (*envelope, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read backend response: %w", err)
	}

	var env envelope
	if len(raw) > 0 {
		// A non-JSON body (proxy error page, etc.) is treated as unstructured.
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 400 {
			return nil, fmt.Errorf("decode backend response: %w", err)
		}
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.errorMessage()}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode backend data: %w", err)
		}
	}
	return &env, nil
}
