package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/pagelens"
	pagelenshttp "github.com/fwojciec/pagelens/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := pagelenshttp.NewFetcher()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello World</body></html>", html)
	})

	t.Run("sends browser user agent", func(t *testing.T) {
		t.Parallel()

		uaCh := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uaCh <- r.Header.Get("User-Agent")
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		fetcher := pagelenshttp.NewFetcher()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		gotUA := <-uaCh
		assert.Equal(t, pagelenshttp.DefaultUserAgent, gotUA)
		assert.True(t, strings.HasPrefix(gotUA, "Mozilla/5.0"))
	})

	t.Run("respects custom user agent option", func(t *testing.T) {
		t.Parallel()

		uaCh := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uaCh <- r.Header.Get("User-Agent")
		}))
		defer server.Close()

		fetcher := pagelenshttp.NewFetcher(pagelenshttp.WithUserAgent("pagelens-test"))

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "pagelens-test", <-uaCh)
	})

	t.Run("accepts any 2xx status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNonAuthoritativeInfo)
			_, _ = w.Write([]byte("<p>cached</p>"))
		}))
		defer server.Close()

		html, err := pagelenshttp.NewFetcher().Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<p>cached</p>", html)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := pagelenshttp.NewFetcher(pagelenshttp.WithTimeout(10 * time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, pagelens.EFETCH, pagelens.ErrorCode(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := pagelenshttp.NewFetcher()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.Fetch(ctx, server.URL)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("returns EFETCH for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := pagelenshttp.NewFetcher(pagelenshttp.WithTimeout(100 * time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), "http://non-existent-host.invalid/page")
		require.Error(t, err)
		assert.Equal(t, pagelens.EFETCH, pagelens.ErrorCode(err))
	})

	t.Run("returns EFETCH for non-2xx status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 Not Found"))
		}))
		defer server.Close()

		_, err := pagelenshttp.NewFetcher().Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, pagelens.EFETCH, pagelens.ErrorCode(err))
		assert.Contains(t, pagelens.ErrorMessage(err), "404")
	})

	t.Run("returns EFETCH for malformed URL", func(t *testing.T) {
		t.Parallel()

		_, err := pagelenshttp.NewFetcher().Fetch(context.Background(), "http://[::1")
		require.Error(t, err)
		assert.Equal(t, pagelens.EFETCH, pagelens.ErrorCode(err))
	})
}
