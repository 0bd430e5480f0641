package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"newsact/internal/model"
)

// LocalProvider stores uploads under a fixed root on the local filesystem.
// Files are served by a static mount at urlPrefix outside this package.
type LocalProvider struct {
	root      string
	urlPrefix string
	limits    Limits
}

func NewLocalProvider(root string, urlPrefix string, limits Limits) (*LocalProvider, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve upload root: %w", err)
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create upload root: %w", err)
	}

	return &LocalProvider{
		root:      abs,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
		limits:    limits,
	}, nil
}

func (p *LocalProvider) Name() string { return "local" }

// Upload writes to a temp file in the destination directory and renames it
// into place, so a concurrent reader never observes a partially written file.
func (p *LocalProvider) Upload(ctx context.Context, content []byte, originalName string, category Category) (UploadResult, error) {
	ext, err := validateUpload(content, originalName, category, p.limits)
	if err != nil {
		return UploadResult{}, err
	}

	key := storageKey(category, ext)
	finalPath := filepath.Join(p.root, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(finalPath), 0o755); err != nil {
		return UploadResult{}, fmt.Errorf("create category directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(finalPath), ".upload-*")
	if err != nil {
		return UploadResult{}, fmt.Errorf("create temp file: %w", err)
	}

	if err := p.writeAndPublish(ctx, tmp, content, finalPath); err != nil {
		_ = os.Remove(tmp.Name())
		return UploadResult{}, err
	}

	return UploadResult{
		URL:      p.urlPrefix + "/" + key,
		Path:     key,
		Provider: p.Name(),
	}, nil
}

func (p *LocalProvider) writeAndPublish(ctx context.Context, tmp *os.File, content []byte, finalPath string) error {
	defer tmp.Close()

	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write upload: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync upload: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close upload: %w", err)
	}

	// Abandon the publish if the client went away mid-upload.
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), finalPath); err != nil {
		return fmt.Errorf("publish upload: %w", err)
	}

	return nil
}

// Delete derives the on-disk path from a previously returned URL. A URL that
// does not belong to this backend is invalid input, not a missing file.
func (p *LocalProvider) Delete(_ context.Context, url string) error {
	key, err := p.keyFromURL(url)
	if err != nil {
		return err
	}

	target := filepath.Join(p.root, filepath.FromSlash(key))
	if err := os.Remove(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.ErrFileNotFound
		}
		return fmt.Errorf("delete upload: %w", err)
	}

	return nil
}

func (p *LocalProvider) keyFromURL(url string) (string, error) {
	prefix := p.urlPrefix + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", fmt.Errorf("%w: url %q is not under %q", model.ErrInvalidInput, url, p.urlPrefix)
	}

	key := strings.TrimPrefix(url, prefix)
	cleaned := filepath.ToSlash(filepath.Clean(key))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || strings.HasPrefix(cleaned, "/") {
		return "", fmt.Errorf("%w: url resolves outside the upload root", model.ErrInvalidInput)
	}

	return cleaned, nil
}
