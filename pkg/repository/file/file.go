package file

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tailorkit/pkg/domain/interfaces"
	"github.com/secmon-lab/tailorkit/pkg/domain/model"
)

// File stores each key as <dir>/<key>.json
type File struct {
	dir string
	mu  sync.Mutex
}

var _ interfaces.Storage = &File{}

// New creates the directory if needed and returns a file backed storage
func New(dir string) (*File, error) {
	if dir == "" {
		return nil, goerr.New("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, goerr.Wrap(err, "failed to create storage directory", goerr.V("dir", dir))
	}
	return &File{dir: dir}, nil
}

func (f *File) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", goerr.New("invalid storage key", goerr.V(model.StorageKeyKey, key))
	}
	return filepath.Join(f.dir, key+".json"), nil
}

func (f *File) Load(ctx context.Context, key string) ([]byte, error) {
	path, err := f.path(key)
	if err != nil {
		return nil, err
	}

	// #nosec G304 - path is built from the configured directory and a validated key
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to read storage file", goerr.V(model.StorageKeyKey, key))
	}
	return data, nil
}

// Save writes to a temporary file and renames it over the target, so readers never see a torn document
func (f *File) Save(ctx context.Context, key string, data []byte) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return goerr.Wrap(err, "failed to create temporary file", goerr.V(model.StorageKeyKey, key))
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return goerr.Wrap(err, "failed to write storage file", goerr.V(model.StorageKeyKey, key))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return goerr.Wrap(err, "failed to close storage file", goerr.V(model.StorageKeyKey, key))
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return goerr.Wrap(err, "failed to replace storage file", goerr.V(model.StorageKeyKey, key))
	}
	return nil
}

func (f *File) Close() error {
	return nil
}
