package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps each collection in <dir>/<collection>.json.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Init(ctx context.Context) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &Error{Op: "init", Collection: s.dir, Err: err}
	}
	return nil
}

func (s *FileStore) Load(ctx context.Context, collection string) ([]byte, error) {
	if err := validateName("load", collection); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(collection))
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.Save(ctx, collection, emptyCollection); err != nil {
			return nil, err
		}
		return append([]byte(nil), emptyCollection...), nil
	}
	if err != nil {
		return nil, &Error{Op: "load", Collection: collection, Err: err}
	}
	return data, nil
}

// Save writes a temp file next to the collection and renames it into place.
func (s *FileStore) Save(ctx context.Context, collection string, data []byte) error {
	if err := validateName("save", collection); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &Error{Op: "save", Collection: collection, Err: err}
	}

	tmp, err := os.CreateTemp(s.dir, collection+".*.tmp")
	if err != nil {
		return &Error{Op: "save", Collection: collection, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return &Error{Op: "save", Collection: collection, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return &Error{Op: "save", Collection: collection, Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &Error{Op: "save", Collection: collection, Err: err}
	}
	if err := os.Rename(tmpName, s.path(collection)); err != nil {
		_ = os.Remove(tmpName)
		return &Error{Op: "save", Collection: collection, Err: err}
	}
	return nil
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}
