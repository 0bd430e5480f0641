package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"newsact/internal/model"
	"newsact/internal/util"
)

// Category classifies an upload and picks its size policy and folder.
type Category string

const (
	CategoryGeneric   Category = "images"
	CategoryAvatar    Category = "avatars"
	CategoryPostImage Category = "posts"
)

// Limits holds the per-category maximum sizes in bytes.
type Limits struct {
	Generic   int64
	Avatar    int64
	PostImage int64
}

func DefaultLimits() Limits {
	return Limits{
		Generic:   5 * 1000 * 1000,
		Avatar:    2 * 1000 * 1000,
		PostImage: 5 * 1000 * 1000,
	}
}

func (l Limits) maxFor(category Category) int64 {
	switch category {
	case CategoryAvatar:
		return l.Avatar
	case CategoryPostImage:
		return l.PostImage
	default:
		return l.Generic
	}
}

type UploadResult struct {
	URL      string `json:"url"`
	Path     string `json:"path"`
	Provider string `json:"provider"`
}

// Provider is the upload/delete contract implemented by both backends.
// The backend is chosen once at startup and never per request; a failing
// remote call is a request failure, not a fallback to the other backend.
type Provider interface {
	Upload(ctx context.Context, content []byte, originalName string, category Category) (UploadResult, error)
	Delete(ctx context.Context, url string) error
	Name() string
}

var allowedExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"webp": {},
}

// validateUpload enforces the category size ceiling and the image allow-list.
// The content is sniffed by magic bytes; the client filename contributes only
// its extension, which is checked against the allow-list on its own.
func validateUpload(content []byte, originalName string, category Category, limits Limits) (string, error) {
	maxSize := limits.maxFor(category)
	if int64(len(content)) > maxSize {
		return "", fmt.Errorf("%w: %d bytes exceeds limit of %d", model.ErrFileTooLarge, len(content), maxSize)
	}

	mimeType := util.DetectImageMIME(content)
	if mimeType == "" {
		return "", fmt.Errorf("%w: content is not a supported image", model.ErrUnsupportedType)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalName), "."))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("%w: extension %q is not allowed", model.ErrUnsupportedType, ext)
	}

	// The stored extension follows the sniffed content, not the filename.
	return util.ExtensionForMIME(mimeType), nil
}

// storageKey builds a collision-resistant path. Nothing from the client
// filename survives into it except the (already validated) extension.
func storageKey(category Category, ext string) string {
	stamp := time.Now().UTC().Format("20060102_150405")
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s/%s_%s.%s", category, stamp, suffix, ext)
}
