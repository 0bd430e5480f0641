package util

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectImageMIME(t *testing.T) {
	t.Parallel()

	webpHeader := append([]byte("RIFF"), 0x24, 0x00, 0x00, 0x00)
	webpHeader = append(webpHeader, []byte("WEBPVP8 ")...)

	cases := []struct {
		name    string
		content []byte
		want    string
	}{
		{"jpeg magic", []byte{0xff, 0xd8, 0xff, 0xe0, 0x00}, "image/jpeg"},
		{"png magic", []byte("\x89PNG\r\n\x1a\n....."), "image/png"},
		{"webp riff container", webpHeader, "image/webp"},
		{"gif is not accepted", []byte("GIF89a..."), ""},
		{"riff without webp fourcc", []byte("RIFF....WAVEfmt "), ""},
		{"truncated webp header", []byte("RIFF....WEBP")[:12], ""},
		{"empty content", nil, ""},
		{"plain text", []byte("hello world, not an image"), ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectImageMIME(tc.content))
		})
	}
}

func TestExtensionForMIME(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "jpg", ExtensionForMIME("image/jpeg"))
	assert.Equal(t, "png", ExtensionForMIME("image/png"))
	assert.Equal(t, "webp", ExtensionForMIME("image/webp"))
	assert.Equal(t, "", ExtensionForMIME("image/gif"))
	assert.Equal(t, "", ExtensionForMIME(""))
}

func TestImageDimensions(t *testing.T) {
	t.Parallel()

	t.Run("png header reports its size", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 12, 7))))

		width, height, err := ImageDimensions(buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, 12, width)
		assert.Equal(t, 7, height)
	})

	t.Run("non-image content errors", func(t *testing.T) {
		_, _, err := ImageDimensions([]byte("not an image"))
		require.Error(t, err)
	})
}
