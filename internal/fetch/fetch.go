// Package fetch downloads remote binaries referenced by resource records.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"git.home.luguber.info/inful/siteimport/internal/foundation/errors"
)

// DefaultUserAgent identifies the importer to source sites.
const DefaultUserAgent = "Mozilla/5.0 siteimport"

// DefaultTimeout bounds a single download.
const DefaultTimeout = 30 * time.Second

// Fetcher retrieves the bytes behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher issues one GET per call. Anything but 200 OK is a failure; there
// are no retries.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) {
		if d > 0 {
			f.client.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying client. Its timeout is kept as is.
func WithHTTPClient(c *http.Client) Option {
	return func(f *HTTPFetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// NewHTTPFetcher creates a fetcher honouring the proxy environment variables.
func NewHTTPFetcher(opts ...Option) *HTTPFetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	f := &HTTPFetcher{
		client:    &http.Client{Timeout: DefaultTimeout, Transport: transport},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads url and returns the full body.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, errors.RemoteFetchError("failed to create request").
			WithCause(err).
			WithContext("url", url).
			Build()
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.RemoteFetchError("request failed").
			WithCause(err).
			WithContext("url", url).
			Build()
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, errors.RemoteFetchError(fmt.Sprintf("requested resource responded with a code: %d", resp.StatusCode)).
			WithContext("url", url).
			WithContext("status", resp.StatusCode).
			Build()
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.RemoteFetchError("failed to read response body").
			WithCause(err).
			WithContext("url", url).
			Build()
	}
	return data, nil
}
