package engine

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcherSendsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, UserAgentDesktop, r.Header.Get("User-Agent"))
		assert.Equal(t, "es", r.Header.Get("Accept-Language"))
		_, _ = w.Write([]byte("ok body"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(HTTPFetcherOptions{})
	body, err := f.Fetch(context.Background(), srv.URL, map[string]string{
		"User-Agent":      UserAgentDesktop,
		"Accept-Language": "es",
	})
	require.NoError(t, err)
	assert.Equal(t, "ok body", body)
}

func TestHTTPFetcherRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("finally"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(HTTPFetcherOptions{MaxTries: 3, Timeout: 10 * time.Second})
	body, err := f.Fetch(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, "finally", body)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPFetcherDoesNotRetryClientErrors(t *testing.T) {
	for _, code := range []int{http.StatusNotFound, http.StatusTooManyRequests} {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(code)
		}))

		f := NewHTTPFetcher(HTTPFetcherOptions{MaxTries: 3})
		_, err := f.Fetch(context.Background(), srv.URL, nil)
		srv.Close()

		var se *StatusError
		require.True(t, errors.As(err, &se), "status %d: got %v", code, err)
		assert.Equal(t, code, se.StatusCode)
		assert.Equal(t, int32(1), calls.Load(), "status %d must not be retried", code)
	}
}

func TestHTTPFetcherBodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(HTTPFetcherOptions{MaxBytes: 16})
	_, err := f.Fetch(context.Background(), srv.URL, nil)
	assert.ErrorIs(t, err, ErrBodyTooLarge)
}

func TestHTTPFetcherCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("never read"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewHTTPFetcher(HTTPFetcherOptions{})
	_, err := f.Fetch(ctx, srv.URL, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPFetcherWithProxy(t *testing.T) {
	var proxied atomic.Bool
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A forward proxy sees the absolute target URL.
		proxied.Store(r.URL.Host == "video.invalid")
		_, _ = w.Write([]byte("via proxy"))
	}))
	defer proxy.Close()

	pu, err := url.Parse(proxy.URL)
	require.NoError(t, err)
	p, ok := ParseProxy("http://" + pu.Host)
	require.True(t, ok)

	f := NewHTTPFetcher(HTTPFetcherOptions{}).WithProxy(p)
	body, err := f.Fetch(context.Background(), "http://video.invalid/watch?v=x", nil)
	require.NoError(t, err)
	assert.Equal(t, "via proxy", body)
	assert.True(t, proxied.Load())
}

func TestBrowserHeadersLowercase(t *testing.T) {
	h := browserHeaders(map[string]string{"User-Agent": "ua", "Accept-Language": "de"})
	assert.Equal(t, "ua", h["user-agent"])
	assert.Equal(t, "de", h["accept-language"])
	assert.NotEmpty(t, h["accept"])
	_, upper := h["User-Agent"]
	assert.False(t, upper)
}

func TestFormatMetricsIncludesFailures(t *testing.T) {
	IncrFailure("blocked")
	out := FormatMetrics()
	assert.Contains(t, out, "transcript_requests ")
	assert.Contains(t, out, "failures_blocked ")
}
