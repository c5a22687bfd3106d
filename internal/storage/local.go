package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
)

// LocalSource reads artifacts from a directory on disk.
type LocalSource struct {
	dir  string
	fsys fs.FS
}

func NewLocalSource(dir string) *LocalSource {
	return &LocalSource{dir: dir, fsys: os.DirFS(dir)}
}

func (s *LocalSource) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name = path.Clean(name)
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("invalid artifact name %q", name)
	}

	b, err := fs.ReadFile(s.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path.Join(s.dir, name))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path.Join(s.dir, name), err)
	}
	return b, nil
}

// List returns the regular files directly under the directory, sorted.
func (s *LocalSource) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.dir)
		}
		return nil, fmt.Errorf("failed to list %s: %w", s.dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
