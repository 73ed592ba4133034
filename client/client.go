// Package client is the single point of egress to the backend. It
// attaches the session's bearer token to every request, negotiates JSON
// versus multipart bodies, normalizes every failure into
// *models.ApiError and owns the global 401 cascade.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"backoffice/config"
	"backoffice/models"
	"backoffice/session"
)

// Client issues requests against one backend base URL.
type Client struct {
	base           string
	http           *http.Client
	session        *session.Store
	onUnauthorized func()
}

// New builds a client. onUnauthorized is invoked after the session has
// been torn down in response to any 401; pass the navigation hook that
// sends the operator back to the login screen. It may be nil.
func New(cfg config.Config, store *session.Store, onUnauthorized func()) *Client {
	return &Client{
		base:           strings.TrimRight(cfg.BaseURL, "/"),
		http:           &http.Client{Timeout: cfg.RequestTimeout},
		session:        store,
		onUnauthorized: onUnauthorized,
	}
}

// File is one file part of a multipart submission.
type File struct {
	Field   string
	Name    string
	Content []byte
}

// Form is a file-bearing form body. Passing a *Form as the request body
// switches the request to multipart/form-data; any other non-nil body
// is sent as JSON.
type Form struct {
	Fields map[string]string
	Files  []File
}

// Get issues a GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, query, out)
}

// Post issues a POST with a JSON or multipart body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, nil, out)
}

// Put issues a PUT with a JSON or multipart body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, nil, out)
}

// Patch issues a PATCH with a JSON or multipart body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, body, nil, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, out)
}

// Do issues one request. out, when non-nil, receives the decoded 2xx
// response body. Every failure is returned as *models.ApiError.
func (c *Client) Do(ctx context.Context, method, path string, body any, query url.Values, out any) error {
	reqURL := c.base + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	reqBody, contentType, err := encodeBody(body)
	if err != nil {
		return &models.ApiError{Message: fmt.Sprintf("could not encode request body: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return &models.ApiError{Message: err.Error()}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return transportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Global side effect: any 401 tears down the session and routes
		// the operator to the login screen, regardless of the caller.
		c.session.Logout()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return &models.ApiError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("could not decode response: %v", err),
		}
	}
	return nil
}

func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case *Form:
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		for field, value := range b.Fields {
			if err := w.WriteField(field, value); err != nil {
				return nil, "", err
			}
		}
		for _, f := range b.Files {
			part, err := w.CreateFormFile(f.Field, f.Name)
			if err != nil {
				return nil, "", err
			}
			if _, err := part.Write(f.Content); err != nil {
				return nil, "", err
			}
		}
		if err := w.Close(); err != nil {
			return nil, "", err
		}
		return &buf, w.FormDataContentType(), nil
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

func transportError(ctx context.Context, err error) *models.ApiError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &models.ApiError{Message: "request timed out", Code: "TIMEOUT"}
	}
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return &models.ApiError{Message: "request cancelled", Code: "CANCELLED"}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &models.ApiError{Message: "request timed out", Code: "TIMEOUT"}
	}
	return &models.ApiError{Message: "network error", Code: "NETWORK"}
}

func decodeError(resp *http.Response) *models.ApiError {
	apiErr := &models.ApiError{Status: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil && len(data) > 0 {
		_ = json.Unmarshal(data, apiErr)
	}
	apiErr.Status = resp.StatusCode
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
