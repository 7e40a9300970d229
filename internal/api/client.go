// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package api is the HTTP client for the external course platform API.
// Every endpoint answers with a {success, data, message} envelope; the
// client unwraps it into typed models and turns failures into *APIError.
// There are no retries: one call, one request.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"sort"
	"strings"
	"time"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 10 << 20

// Client talks to the course API rooted at baseURL.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a client for the API at baseURL. A zero timeout defaults
// to 15 seconds.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the API root the client was configured with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIError is returned when the API answers with a non-2xx status or
// with success=false.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// ErrorMessage extracts a message fit for an admin-facing notice. API
// errors carry the server's message; anything else gets the fallback.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsNotFound reports whether err is an API 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type tokenKey struct{}

// WithToken returns a context whose API calls carry the admin's bearer token.
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFromCtx(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// envelope is the response wrapper used by every endpoint.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Token   string          `json:"token"`
}

// Upload is a file part of a multipart request.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// form is a multipart body: text fields plus at most one file per field.
type form struct {
	values url.Values
	files  map[string]*Upload
}

func newForm() *form {
	return &form{values: url.Values{}, files: map[string]*Upload{}}
}

// set adds a text field, skipping empty values the way the dashboard
// forms always have.
func (f *form) set(key, value string) {
	if value != "" {
		f.values.Set(key, value)
	}
}

func (f *form) file(key string, u *Upload) {
	if u != nil && u.Body != nil {
		f.files[key] = u
	}
}

// encode writes the multipart body and returns it with its content type.
func (f *form) encode() (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(f.values))
	for k := range f.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range f.values[k] {
			if err := mw.WriteField(k, v); err != nil {
				return nil, "", fmt.Errorf("write field %s: %w", k, err)
			}
		}
	}

	for field, u := range f.files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(field), escapeQuotes(u.Filename)))
		ct := u.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", field, err)
		}
		if _, err := io.Copy(part, u.Body); err != nil {
			return nil, "", fmt.Errorf("copy part %s: %w", field, err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// get fetches path and decodes the envelope data into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	_, err := c.do(ctx, http.MethodGet, path, nil, "", out)
	return err
}

// sendJSON marshals in as the request body. Returns the API's message.
func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) (string, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("marshal %s %s: %w", method, path, err)
	}
	return c.do(ctx, method, path, bytes.NewReader(payload), "application/json", out)
}

// sendForm sends a multipart body. Returns the API's message.
func (c *Client) sendForm(ctx context.Context, method, path string, f *form, out any) (string, error) {
	body, contentType, err := f.encode()
	if err != nil {
		return "", fmt.Errorf("encode %s %s: %w", method, path, err)
	}
	return c.do(ctx, method, path, body, contentType, out)
}

// del issues a DELETE. Returns the API's message.
func (c *Client) del(ctx context.Context, path string) (string, error) {
	return c.do(ctx, http.MethodDelete, path, nil, "", nil)
}

// do performs one HTTP call and returns the envelope's message.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) (string, error) {
	env, err := c.roundTrip(ctx, method, path, body, contentType, out)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// roundTrip performs one HTTP call and unwraps the envelope, decoding its
// data into out when out is non-nil.
func (c *Client) roundTrip(ctx context.Context, method, path string, body io.Reader, contentType string, out any) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("api request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if token := tokenFromCtx(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("api read body: %w", err)
	}

	var env envelope
	jsonErr := json.Unmarshal(respBody, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		if msg == "" || jsonErr != nil {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{Status: resp.StatusCode, Message: msg}
	}

	if jsonErr != nil {
		trimmed := bytes.TrimSpace(respBody)
		// Some endpoints answer DELETE with an empty body.
		if len(trimmed) == 0 && out == nil {
			return &envelope{}, nil
		}
		// A few list endpoints return a bare array instead of an envelope.
		if len(trimmed) > 0 && trimmed[0] == '[' && out != nil {
			if err := json.Unmarshal(trimmed, out); err != nil {
				return nil, fmt.Errorf("api decode list %s %s: %w", method, path, err)
			}
			return &envelope{}, nil
		}
		return nil, fmt.Errorf("api unmarshal %s %s: %w", method, path, jsonErr)
	}

	if env.Success != nil && !*env.Success {
		msg := env.Message
		if msg == "" {
			msg = "request failed"
		}
		return nil, &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("api decode data %s %s: %w", method, path, err)
		}
	}

	return &env, nil
}

// escape path-escapes an id for use in a URL.
func escape(id string) string {
	return url.PathEscape(id)
}
