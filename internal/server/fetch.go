package server

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stylescout/stylescout/internal/llm"
)

const (
	fetchTimeout  = 30 * time.Second
	fetchMaxBytes = 10 * 1024 * 1024
)

// ImageFetcher downloads a remote photo for analyze-by-URL requests.
type ImageFetcher struct {
	httpClient *resty.Client
	maxBytes   int
}

// NewImageFetcher creates a fetcher with the default timeout and size limit.
func NewImageFetcher() *ImageFetcher {
	return &ImageFetcher{
		httpClient: resty.New().
			SetTimeout(fetchTimeout).
			SetHeader("Accept", "image/*"),
		maxBytes: fetchMaxBytes,
	}
}

// Fetch downloads the image at url and returns the raw bytes plus the MIME
// type sniffed from them. The server's declared Content-Type must be an
// image when present. The body is read through a limited reader so a
// hostile URL cannot buffer more than the size limit into memory.
func (f *ImageFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	resp, err := f.httpClient.R().SetContext(ctx).SetDoNotParseResponse(true).Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download image: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != 200 {
		return nil, "", fmt.Errorf("download failed: status %d", resp.StatusCode())
	}

	contentType := resp.Header().Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return nil, "", fmt.Errorf("invalid content type: expected image/*, got %s", contentType)
	}

	// Reject early when the server declares the size
	if length := resp.RawResponse.ContentLength; length > int64(f.maxBytes) {
		return nil, "", fmt.Errorf("image too large: %d bytes exceeds limit of %d bytes", length, f.maxBytes)
	}

	data, err := io.ReadAll(io.LimitReader(body, int64(f.maxBytes)+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image data: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty response body")
	}
	if len(data) > f.maxBytes {
		return nil, "", fmt.Errorf("image too large: exceeds limit of %d bytes", f.maxBytes)
	}

	return data, llm.DetectMIMEType(data), nil
}
