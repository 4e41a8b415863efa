package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrUnsupportedImage = errors.New("unsupported image type")

// AllowedImageExtensions are the file types accepted for coffee images.
var AllowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// BlobService stores uploaded images and returns their public URL.
type BlobService interface {
	Upload(ctx context.Context, fileName string, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// LocalBlobService keeps blobs in a directory that the router serves under /uploads.
type LocalBlobService struct {
	dir     string
	baseURL string
}

func NewLocalBlobService(dir, publicBaseURL string) (*LocalBlobService, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &LocalBlobService{dir: dir, baseURL: strings.TrimRight(publicBaseURL, "/")}, nil
}

func (s *LocalBlobService) Upload(ctx context.Context, fileName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !IsAllowedImage(ext) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedImage, ext)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create blob: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write blob: %w", err)
	}

	return s.baseURL + "/uploads/" + name, nil
}

// Delete removes the blob behind url. Unknown URLs are ignored.
func (s *LocalBlobService) Delete(ctx context.Context, url string) error {
	prefix := s.baseURL + "/uploads/"
	if !strings.HasPrefix(url, prefix) {
		return nil
	}
	name := filepath.Base(strings.TrimPrefix(url, prefix))
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

func IsAllowedImage(ext string) bool {
	for _, e := range AllowedImageExtensions {
		if e == ext {
			return true
		}
	}
	return false
}
