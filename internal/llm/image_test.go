package llm

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Minimal valid PNG header bytes, enough for content sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}

var jpegHeader = []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0x10, 'J', 'F', 'I', 'F', 0, 0}

func TestStripDataURLPrefix(t *testing.T) {
	assert.Equal(t, "abc123", StripDataURLPrefix("data:image/png;base64,abc123"))
	assert.Equal(t, "abc123", StripDataURLPrefix("abc123"))
}

func TestStripDataURLPrefixIsIdempotent(t *testing.T) {
	once := StripDataURLPrefix("data:image/jpeg;base64,/9j/4AAQ")
	twice := StripDataURLPrefix(once)
	assert.Equal(t, once, twice)
}

func TestDataURLMIMEType(t *testing.T) {
	assert.Equal(t, "image/png", DataURLMIMEType("data:image/png;base64,abc"))
	assert.Equal(t, "", DataURLMIMEType("abc"))
}

func TestDetectMIMEType(t *testing.T) {
	assert.Equal(t, "image/png", DetectMIMEType(pngHeader))
	assert.Equal(t, "image/jpeg", DetectMIMEType(jpegHeader))
	// Non-image bytes fall back to jpeg rather than text/plain
	assert.Equal(t, "image/jpeg", DetectMIMEType([]byte("hello world")))
}

func TestDecodeImagePayload(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(pngHeader)

	t.Run("header mime wins", func(t *testing.T) {
		data, mime, err := DecodeImagePayload("data:image/webp;base64," + encoded)
		require.NoError(t, err)
		assert.Equal(t, pngHeader, data)
		assert.Equal(t, "image/webp", mime)
	})

	t.Run("leading whitespace keeps the header mime", func(t *testing.T) {
		data, mime, err := DecodeImagePayload("  \n data:image/webp;base64," + encoded)
		require.NoError(t, err)
		assert.Equal(t, pngHeader, data)
		assert.Equal(t, "image/webp", mime)
	})

	t.Run("bare base64 is sniffed", func(t *testing.T) {
		data, mime, err := DecodeImagePayload(encoded)
		require.NoError(t, err)
		assert.Equal(t, pngHeader, data)
		assert.Equal(t, "image/png", mime)
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, _, err := DecodeImagePayload("not base64!!!")
		assert.Error(t, err)
	})

	t.Run("empty payload", func(t *testing.T) {
		_, _, err := DecodeImagePayload("")
		assert.Error(t, err)
	})
}

func TestPNGDataURI(t *testing.T) {
	uri := PNGDataURI(pngHeader)
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	decoded, err := base64.StdEncoding.DecodeString(StripDataURLPrefix(uri))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, decoded)
}
