// Package imageapi provides a client for the remote image-management service:
// a thin HTTP wrapper, a response normalizer that turns heterogeneous
// JSON/HTML/text bodies into readable results, and a size cache for the
// service's category size table.
package imageapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

// APIKeyHeader is the header carrying the static service key.
const APIKeyHeader = "x-api-key"

// Client issues requests against the image service. It joins the configured
// base URL with relative paths and injects the API key on every request.
// No timeout and no retries: failures are reported once to the caller.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates a client for the given base URL and API key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		HTTPClient: &http.Client{},
	}
}

// Get issues a GET request for the given relative path.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	return c.do(ctx, http.MethodGet, path, "", nil)
}

// Post issues a POST request with an empty body for the given relative path.
func (c *Client) Post(ctx context.Context, path string) (*http.Response, error) {
	return c.do(ctx, http.MethodPost, path, "", nil)
}

// UploadFile POSTs the named local file to the given relative path as a
// multipart form with field name "image".
func (c *Client) UploadFile(ctx context.Context, path, filename string) (*http.Response, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat upload file: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("failed to read upload file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	slog.Info("uploading image",
		"file", filepath.Base(filename),
		"size", humanize.Bytes(uint64(info.Size())),
		"path", path)

	return c.do(ctx, http.MethodPost, path, w.FormDataContentType(), &buf)
}

// do builds the absolute URL, injects the API key, and issues the request.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	url := c.BaseURL + "/" + strings.TrimLeft(path, "/")

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.APIKey != "" {
		req.Header.Set(APIKeyHeader, c.APIKey)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	slog.Debug("image service request", "method", method, "url", url)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	slog.Debug("image service response", "method", method, "url", url, "status", resp.StatusCode)
	return resp, nil
}
