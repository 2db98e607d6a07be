package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageFetcherFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(testImage)
	}))
	defer srv.Close()

	data, mime, err := NewImageFetcher().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, testImage, data)
	assert.Equal(t, "image/png", mime)
}

func TestImageFetcherRejectsNonImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	_, _, err := NewImageFetcher().Fetch(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "invalid content type")
}

func TestImageFetcherRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, _, err := NewImageFetcher().Fetch(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "status 404")
}

func TestImageFetcherRejectsOversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(make([]byte, 1024))
	}))
	defer srv.Close()

	fetcher := NewImageFetcher()
	fetcher.maxBytes = 512
	_, _, err := fetcher.Fetch(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "too large")
}

func TestImageFetcherRejectsOversizedChunkedBody(t *testing.T) {
	// No Content-Length: the limited reader must stop the download
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		flusher := w.(http.Flusher)
		for i := 0; i < 4; i++ {
			w.Write(make([]byte, 256))
			flusher.Flush()
		}
	}))
	defer srv.Close()

	fetcher := NewImageFetcher()
	fetcher.maxBytes = 512
	_, _, err := fetcher.Fetch(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "too large")
}
