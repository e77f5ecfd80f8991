package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore writes images into a single directory served under urlPrefix.
type LocalStore struct {
	baseDir   string
	urlPrefix string
	maxSize   int64
}

func NewLocalStore(baseDir, urlPrefix string, maxSize int64) *LocalStore {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	return &LocalStore{
		baseDir:   baseDir,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
		maxSize:   maxSize,
	}
}

// EnsureDir creates the uploads directory if it is missing.
func (s *LocalStore) EnsureDir() error {
	return os.MkdirAll(s.baseDir, 0o755)
}

func (s *LocalStore) Dir() string { return s.baseDir }

func (s *LocalStore) URLPrefix() string { return s.urlPrefix }

func (s *LocalStore) Save(ctx context.Context, fileHeader *multipart.FileHeader) (*Image, error) {
	in, err := open(fileHeader, s.maxSize)
	if err != nil {
		return nil, err
	}
	defer in.file.Close()

	if err := s.EnsureDir(); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename := fmt.Sprintf("image-%s_%s%s", uuid.New().String(), sanitizeName(fileHeader.Filename), in.ext)
	absPath := filepath.Join(s.baseDir, filename)

	dst, err := os.Create(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(dst, in.file); err != nil {
		dst.Close()
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &Image{
		Key:          filename,
		URL:          s.urlPrefix + "/" + filename,
		OriginalName: fileHeader.Filename,
		MimeType:     in.mimeType,
		Size:         fileHeader.Size,
	}, nil
}

// Remove deletes a stored image. A missing file is not an error.
func (s *LocalStore) Remove(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(s.baseDir, filepath.Base(key)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
