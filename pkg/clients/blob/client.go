package blob

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the Vercel Blob API endpoint.
const DefaultBaseURL = "https://blob.vercel-storage.com"

const apiVersion = "7"

// PutResult is the API's description of a stored blob.
type PutResult struct {
	URL         string `json:"url"`
	DownloadURL string `json:"downloadUrl"`
	Pathname    string `json:"pathname"`
	ContentType string `json:"contentType"`
}

// APIError represents a non-2xx response from the blob API.
type APIError struct {
	StatusCode int
	Body       string // first 512 bytes
}

func (e *APIError) Error() string {
	return fmt.Sprintf("blob api HTTP %d: %s", e.StatusCode, e.Body)
}

// Client defines the interface for writing to blob storage with a read-write token
type Client interface {
	Put(ctx context.Context, pathname string, body []byte, contentType string) (*PutResult, error)
}

type clientImpl struct {
	http *resty.Client
}

// NewClient creates a new blob client. An empty baseURL selects DefaultBaseURL.
func NewClient(token, baseURL string) Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &clientImpl{
		http: resty.New().
			SetBaseURL(baseURL).
			SetAuthToken(token).
			SetTimeout(30 * time.Second),
	}
}

// Put uploads body under pathname, keeping the name exactly as given. The
// blob is requested as private.
func (c *clientImpl) Put(ctx context.Context, pathname string, body []byte, contentType string) (*PutResult, error) {
	var result PutResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("pathname", pathname).
		SetHeader("x-api-version", apiVersion).
		SetHeader("x-content-type", contentType).
		SetHeader("x-add-random-suffix", "0").
		SetHeader("x-vercel-blob-access", "private").
		SetHeader("Content-Type", contentType).
		SetBody(body).
		SetResult(&result).
		Put("/")
	if err != nil {
		return nil, fmt.Errorf("error uploading blob %s: %w", pathname, err)
	}

	if resp.IsError() {
		b := resp.String()
		if len(b) > 512 {
			b = b[:512]
		}
		return nil, &APIError{StatusCode: resp.StatusCode(), Body: b}
	}

	if result.Pathname == "" {
		result.Pathname = pathname
	}

	slog.Debug("stored blob", "pathname", result.Pathname, "url", result.URL)
	return &result, nil
}
