package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Fetcher is the transport used by the transcript pipeline:
// GET a URL with the given headers and return the body as text.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string, headers map[string]string) (string, error)
}

// ProxyFetcher is implemented by transports that can route through a proxy.
type ProxyFetcher interface {
	Fetcher
	WithProxy(p *Proxy) Fetcher
}

// StatusError is returned for any non-200 response.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d", e.StatusCode)
}

// ErrBodyTooLarge is returned when a response exceeds the configured byte limit.
var ErrBodyTooLarge = errors.New("response body too large")

const (
	defaultMaxBodyBytes = 6 * 1024 * 1024
	defaultFetchTimeout = 15 * time.Second
)

// HTTPFetcherOptions configures an HTTPFetcher. Zero values pick defaults.
type HTTPFetcherOptions struct {
	Client   *http.Client
	Timeout  time.Duration
	MaxTries uint
	MaxBytes int64
	Proxy    *Proxy
}

// HTTPFetcher is a net/http Fetcher with exponential backoff on transient failures.
type HTTPFetcher struct {
	client *http.Client
	opts   HTTPFetcherOptions
}

// NewHTTPFetcher creates a Fetcher backed by net/http.
func NewHTTPFetcher(opts HTTPFetcherOptions) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultFetchTimeout
	}
	if opts.MaxTries == 0 {
		opts.MaxTries = 3
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = defaultMaxBodyBytes
	}
	client := opts.Client
	if client == nil {
		client = newFetchClient()
	}
	if opts.Proxy != nil {
		client = withProxy(client, opts.Proxy)
	}
	return &HTTPFetcher{client: client, opts: opts}
}

// WithProxy returns a copy of f routed through p.
func (f *HTTPFetcher) WithProxy(p *Proxy) Fetcher {
	opts := f.opts
	opts.Proxy = p
	return NewHTTPFetcher(opts)
}

// newFetchClient creates an HTTP client with proper settings for page scraping.
func newFetchClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     30 * time.Second,
			TLSHandshakeTimeout: 15 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return errors.New("stopped after 10 redirects")
			}
			return nil
		},
	}
}

// withProxy clones c with its transport routed through p.
func withProxy(c *http.Client, p *Proxy) *http.Client {
	var tr *http.Transport
	if base, ok := c.Transport.(*http.Transport); ok && base != nil {
		tr = base.Clone()
	} else {
		tr = http.DefaultTransport.(*http.Transport).Clone()
	}
	tr.Proxy = http.ProxyURL(p.URL())
	clone := *c
	clone.Transport = tr
	return &clone
}

// Fetch performs a GET with retry. 5xx responses and network errors are
// retried; 429 and other statuses are returned immediately as *StatusError.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string, headers map[string]string) (string, error) {
	metrics.FetchRequests.Add(1)

	ctx, cancel := context.WithTimeout(ctx, f.opts.Timeout)
	defer cancel()

	operation := func() (string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return "", backoff.Permanent(err)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return "", backoff.Permanent(err)
			}
			return "", err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			se := &StatusError{StatusCode: resp.StatusCode, URL: rawURL}
			if resp.StatusCode != http.StatusTooManyRequests && IsRetryableStatus(resp.StatusCode) {
				return "", se
			}
			return "", backoff.Permanent(se)
		}

		body, err := readResponseBody(resp, f.opts.MaxBytes)
		if err != nil {
			return "", backoff.Permanent(err)
		}
		return string(body), nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 5 * time.Second

	body, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(f.opts.MaxTries),
		backoff.WithMaxElapsedTime(f.opts.Timeout),
	)
	if err != nil {
		metrics.FetchErrors.Add(1)
		return "", err
	}
	return body, nil
}

// readResponseBody reads at most maxBytes of the body.
func readResponseBody(resp *http.Response, maxBytes int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > maxBytes {
		return nil, ErrBodyTooLarge
	}
	return body, nil
}
