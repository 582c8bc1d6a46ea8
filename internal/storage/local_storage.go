package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"carrental-backend/internal/logger"

	"github.com/google/uuid"
)

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ContentTypeForKey maps a key's extension back to its MIME type.
func ContentTypeForKey(key string) string {
	ext := strings.ToLower(filepath.Ext(key))
	if ext == ".jpeg" {
		return "image/jpeg"
	}
	for ct, e := range extensions {
		if e == ext {
			return ct
		}
	}
	return "application/octet-stream"
}

// LocalImageStore stores images on the local filesystem.
type LocalImageStore struct {
	baseURL     string
	imagesDir   string
	maxFileSize int64
}

func NewLocalImageStore(cfg Config) (*LocalImageStore, error) {
	imagesDir := filepath.Join(cfg.UploadDir, "images")
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create images directory: %w", err)
	}
	return &LocalImageStore{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		imagesDir:   imagesDir,
		maxFileSize: cfg.MaxFileSize,
	}, nil
}

func (s *LocalImageStore) NewKey(contentType string) (string, error) {
	ct := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	ext, ok := extensions[ct]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, contentType)
	}
	return uuid.NewString() + ext, nil
}

// path resolves a key inside imagesDir, refusing anything that is not a plain
// file name.
func (s *LocalImageStore) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.imagesDir, key), nil
}

func (s *LocalImageStore) Save(ctx context.Context, key string, r io.Reader) error {
	fullPath, err := s.path(key)
	if err != nil {
		return err
	}
	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	src := r
	if s.maxFileSize > 0 {
		src = io.LimitReader(r, s.maxFileSize+1)
	}
	n, err := io.Copy(file, src)
	if err == nil && s.maxFileSize > 0 && n > s.maxFileSize {
		err = ErrTooLarge
	}
	if err != nil {
		file.Close()
		os.Remove(fullPath)
		if errors.Is(err, ErrTooLarge) {
			return err
		}
		return fmt.Errorf("failed to write file: %w", err)
	}
	logger.Debug("Image stored", "key", key, "bytes", n)
	return nil
}

func (s *LocalImageStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	fullPath, err := s.path(key)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

func (s *LocalImageStore) Exists(ctx context.Context, key string) (bool, int64, error) {
	fullPath, err := s.path(key)
	if err != nil {
		return false, 0, err
	}
	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, info.Size(), nil
}

func (s *LocalImageStore) Delete(ctx context.Context, key string) error {
	fullPath, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalImageStore) URL(key string) string {
	return fmt.Sprintf("%s/api/v1/vehicles/images/%s", s.baseURL, key)
}
