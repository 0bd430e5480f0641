package util

import (
	"bytes"
	"image"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// DetectImageMIME identifies jpeg/png/webp content by magic bytes.
// Returns "" for anything else; declared content-type headers are ignored.
func DetectImageMIME(content []byte) string {
	switch {
	case bytes.HasPrefix(content, []byte{0xff, 0xd8, 0xff}):
		return "image/jpeg"
	case bytes.HasPrefix(content, []byte("\x89PNG\r\n\x1a\n")):
		return "image/png"
	case len(content) > 12 && bytes.Equal(content[:4], []byte("RIFF")) && bytes.Equal(content[8:12], []byte("WEBP")):
		return "image/webp"
	default:
		return ""
	}
}

func ExtensionForMIME(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	default:
		return ""
	}
}

// ImageDimensions decodes only the image header. Supported formats are
// registered via blank imports above.
func ImageDimensions(content []byte) (width int, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
