// Package upload stores artwork image blobs on local disk or in S3.
package upload

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const DefaultMaxFileSize = 50 * 1024 * 1024 // 50 MB

// AllowedMimeTypes defines which image types are accepted
var AllowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Image is a stored blob. Key identifies it for Remove, URL is what the
// artwork record references.
type Image struct {
	Key          string
	URL          string
	OriginalName string
	MimeType     string
	Size         int64
}

// Store saves and removes image blobs.
type Store interface {
	Save(ctx context.Context, fileHeader *multipart.FileHeader) (*Image, error)
	Remove(ctx context.Context, key string) error
}

// opened is an accepted upload positioned at its first byte.
type opened struct {
	file     multipart.File
	mimeType string
	ext      string
}

// open checks size and sniffs the content type of an uploaded file.
// The caller closes the returned file.
func open(fileHeader *multipart.FileHeader, maxSize int64) (*opened, error) {
	if fileHeader.Size == 0 {
		return nil, ErrEmptyFile
	}
	if maxSize > 0 && fileHeader.Size > maxSize {
		return nil, ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to detect file type: %w", err)
	}
	mimeType := strings.Split(mtype.String(), ";")[0]
	if !AllowedMimeTypes[mimeType] {
		file.Close()
		return nil, ErrInvalidMimeType
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to rewind file: %w", err)
	}

	return &opened{file: file, mimeType: mimeType, ext: mtype.Extension()}, nil
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name)) // strip extension (added separately)
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 40 {
		name = name[:40]
	}
	if name == "" || name == "_" {
		return "image"
	}
	return name
}
