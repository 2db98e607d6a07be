package llm

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// StripDataURLPrefix removes a "data:<mime>;base64," header if present.
// It is idempotent: input with or without the header yields the same bytes.
func StripDataURLPrefix(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if idx := strings.IndexByte(s, ','); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

// DataURLMIMEType returns the MIME type declared in a data-URL header, or
// empty string when the input carries no header.
func DataURLMIMEType(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return ""
	}
	rest := strings.TrimPrefix(s, "data:")
	if idx := strings.IndexByte(rest, ';'); idx >= 0 {
		return rest[:idx]
	}
	return ""
}

// DetectMIMEType determines the image MIME type from the actual bytes,
// falling back to image/jpeg when detection is inconclusive.
func DetectMIMEType(data []byte) string {
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "image/jpeg"
	}
	return mime
}

// DecodeImagePayload decodes a base64 image string, with or without a
// data-URL header, into raw bytes plus the MIME type to transmit. A MIME
// type declared in the header wins; otherwise it is sniffed from the bytes.
func DecodeImagePayload(payload string) ([]byte, string, error) {
	payload = strings.TrimSpace(payload)
	headerMIME := DataURLMIMEType(payload)
	raw := StripDataURLPrefix(payload)

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode base64 image data: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty image data")
	}

	mime := headerMIME
	if mime == "" {
		mime = DetectMIMEType(data)
	}
	return data, mime, nil
}

// PNGDataURI wraps raw PNG bytes as a data URI suitable for direct display.
func PNGDataURI(data []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}
