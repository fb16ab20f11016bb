package render

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// rankingResource is the fixed resource name fetched relative to a base URL.
const rankingResource = "ranking.json"

// DefaultFetchTimeout bounds a ranking fetch when the caller does not bring
// its own deadline. A hung source must not hang the render pass.
const DefaultFetchTimeout = 15 * time.Second

// Source supplies one raw ranking.json payload per render pass.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// --------------------------------------------------------------------------
// HTTP source
// --------------------------------------------------------------------------

// HTTPSource GETs the ranking resource from a base URL.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource builds an HTTP source. rawURL may point at the resource
// itself or at the page hosting it; anything not ending in .json gets
// ranking.json appended. A zero timeout uses DefaultFetchTimeout.
func NewHTTPSource(rawURL string, timeout time.Duration) *HTTPSource {
	if !strings.HasSuffix(rawURL, ".json") {
		rawURL = strings.TrimSuffix(rawURL, "/") + "/" + rankingResource
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &HTTPSource{
		url:    rawURL,
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch issues the GET and returns the response body. Non-2xx statuses and
// transport failures are fetch errors; the body is never inspected here.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d", ErrFetch, s.url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrFetch, err)
	}
	return body, nil
}

// --------------------------------------------------------------------------
// File and in-memory sources
// --------------------------------------------------------------------------

// FileSource reads the ranking payload from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return data, nil
}

// BytesSource serves a fixed payload, e.g. a snapshot already loaded from
// the database.
type BytesSource []byte

func (s BytesSource) Fetch(ctx context.Context) ([]byte, error) {
	return []byte(s), nil
}
