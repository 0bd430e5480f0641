package storage

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsact/internal/model"
)

const testURLPrefix = "/static/uploads"

func testLimits() Limits {
	return Limits{Generic: 4096, Avatar: 1024, PostImage: 4096}
}

func newTestProvider(t *testing.T) (*LocalProvider, string) {
	t.Helper()

	root := t.TempDir()
	provider, err := NewLocalProvider(root, testURLPrefix, testLimits())
	require.NoError(t, err)
	return provider, root
}

func pngContent(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

// jpegContent returns bytes that sniff as jpeg, padded to the requested size.
func jpegContent(size int) []byte {
	content := make([]byte, size)
	copy(content, []byte{0xff, 0xd8, 0xff, 0xe0})
	return content
}

func listFiles(t *testing.T, root string) []string {
	t.Helper()

	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return relErr
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestLocalProvider_Upload(t *testing.T) {
	t.Parallel()

	t.Run("stores the file and returns a serveable url", func(t *testing.T) {
		provider, root := newTestProvider(t)
		content := pngContent(t)

		result, err := provider.Upload(context.Background(), content, "photo.png", CategoryGeneric)
		require.NoError(t, err)

		assert.Equal(t, "local", result.Provider)
		assert.True(t, strings.HasPrefix(result.URL, testURLPrefix+"/images/"), "url %q", result.URL)
		assert.True(t, strings.HasSuffix(result.Path, ".png"))

		stored, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(result.Path)))
		require.NoError(t, err)
		assert.Equal(t, content, stored)
	})

	t.Run("no temp files remain after a successful upload", func(t *testing.T) {
		provider, root := newTestProvider(t)

		_, err := provider.Upload(context.Background(), pngContent(t), "photo.png", CategoryGeneric)
		require.NoError(t, err)

		for _, f := range listFiles(t, root) {
			assert.NotContains(t, f, ".upload-")
		}
	})

	t.Run("same original name never collides", func(t *testing.T) {
		provider, _ := newTestProvider(t)
		content := pngContent(t)

		first, err := provider.Upload(context.Background(), content, "photo.png", CategoryGeneric)
		require.NoError(t, err)
		second, err := provider.Upload(context.Background(), content, "photo.png", CategoryGeneric)
		require.NoError(t, err)

		require.NotEqual(t, first.Path, second.Path)

		// Deleting one must leave the other untouched.
		require.NoError(t, provider.Delete(context.Background(), first.URL))
		require.ErrorIs(t, provider.Delete(context.Background(), first.URL), model.ErrFileNotFound)
		require.NoError(t, provider.Delete(context.Background(), second.URL))
	})

	t.Run("stored extension follows sniffed content not the filename", func(t *testing.T) {
		provider, _ := newTestProvider(t)

		result, err := provider.Upload(context.Background(), jpegContent(64), "renamed.png", CategoryGeneric)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(result.Path, ".jpg"), "path %q", result.Path)
	})

	t.Run("content at the limit is accepted, one byte over is not", func(t *testing.T) {
		provider, _ := newTestProvider(t)
		limit := int(testLimits().Generic)

		_, err := provider.Upload(context.Background(), jpegContent(limit), "exact.jpg", CategoryGeneric)
		require.NoError(t, err)

		_, err = provider.Upload(context.Background(), jpegContent(limit+1), "over.jpg", CategoryGeneric)
		require.ErrorIs(t, err, model.ErrFileTooLarge)
	})

	t.Run("avatar category uses its stricter ceiling", func(t *testing.T) {
		provider, _ := newTestProvider(t)
		oversized := jpegContent(int(testLimits().Avatar) + 1)

		_, err := provider.Upload(context.Background(), oversized, "avatar.jpg", CategoryAvatar)
		require.ErrorIs(t, err, model.ErrFileTooLarge)

		// The same payload is fine under the generic ceiling.
		result, err := provider.Upload(context.Background(), oversized, "avatar.jpg", CategoryGeneric)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(result.Path, string(CategoryGeneric)+"/"))
	})

	t.Run("avatar uploads land in their own folder", func(t *testing.T) {
		provider, _ := newTestProvider(t)

		result, err := provider.Upload(context.Background(), pngContent(t), "me.png", CategoryAvatar)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(result.Path, "avatars/"), "path %q", result.Path)
	})

	t.Run("non-image content is unsupported regardless of name", func(t *testing.T) {
		provider, _ := newTestProvider(t)

		_, err := provider.Upload(context.Background(), []byte("#!/bin/sh\nrm -rf /\n"), "script.png", CategoryGeneric)
		require.ErrorIs(t, err, model.ErrUnsupportedType)
	})

	t.Run("disallowed filename extension is unsupported", func(t *testing.T) {
		provider, _ := newTestProvider(t)

		_, err := provider.Upload(context.Background(), pngContent(t), "image.gif", CategoryGeneric)
		require.ErrorIs(t, err, model.ErrUnsupportedType)
	})

	t.Run("cancelled context leaves nothing behind", func(t *testing.T) {
		provider, root := newTestProvider(t)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := provider.Upload(ctx, pngContent(t), "photo.png", CategoryGeneric)
		require.Error(t, err)
		assert.Empty(t, listFiles(t, root))
	})
}

func TestLocalProvider_Delete(t *testing.T) {
	t.Parallel()

	t.Run("missing file is reported distinctly", func(t *testing.T) {
		provider, _ := newTestProvider(t)

		err := provider.Delete(context.Background(), testURLPrefix+"/images/20240101_000000_deadbeef.png")
		require.ErrorIs(t, err, model.ErrFileNotFound)
	})

	t.Run("url from another backend is invalid input", func(t *testing.T) {
		provider, _ := newTestProvider(t)

		err := provider.Delete(context.Background(), "https://cdn.example.com/images/x.png")
		require.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("path traversal never escapes the root", func(t *testing.T) {
		provider, _ := newTestProvider(t)

		err := provider.Delete(context.Background(), testURLPrefix+"/../../etc/passwd")
		require.ErrorIs(t, err, model.ErrInvalidInput)
	})
}

func TestStorageKeyShape(t *testing.T) {
	t.Parallel()

	key := storageKey(CategoryPostImage, "webp")

	parts := strings.SplitN(key, "/", 2)
	require.Len(t, parts, 2)
	assert.Equal(t, string(CategoryPostImage), parts[0])
	assert.True(t, strings.HasSuffix(parts[1], ".webp"))

	// timestamp_random8.ext
	name := strings.TrimSuffix(parts[1], ".webp")
	segments := strings.Split(name, "_")
	require.Len(t, segments, 3)
	assert.Len(t, segments[0], 8)
	assert.Len(t, segments[1], 6)
	assert.Len(t, segments[2], 8)
}
