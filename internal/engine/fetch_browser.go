package engine

import (
	"context"
	"net/http"
	"strings"
)

// BrowserFetcher fetches through the stealth client so requests carry a
// Chrome TLS fingerprint. Proxy routing is configured on the client itself
// (see proxypool in main), so BrowserFetcher does not implement ProxyFetcher.
type BrowserFetcher struct {
	bc *BrowserClient
}

// NewBrowserFetcher wraps a stealth browser client.
func NewBrowserFetcher(bc *BrowserClient) *BrowserFetcher {
	return &BrowserFetcher{bc: bc}
}

// Fetch performs a GET with the stealth retry policy.
func (f *BrowserFetcher) Fetch(ctx context.Context, rawURL string, headers map[string]string) (string, error) {
	metrics.FetchRequests.Add(1)

	h := browserHeaders(headers)
	body, err := RetryDo(ctx, DefaultRetryConfig, func() ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, _, status, err := f.bc.Do(http.MethodGet, rawURL, h, nil)
		if err != nil {
			return nil, err
		}
		if status != http.StatusOK {
			return nil, &StatusError{StatusCode: status, URL: rawURL}
		}
		return data, nil
	})
	if err != nil {
		metrics.FetchErrors.Add(1)
		return "", err
	}
	return string(body), nil
}

// browserHeaders lower-cases header names, which the stealth client's
// header-order list expects.
func browserHeaders(headers map[string]string) map[string]string {
	h := make(map[string]string, len(headers)+1)
	h["accept"] = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	for k, v := range headers {
		h[strings.ToLower(k)] = v
	}
	return h
}
