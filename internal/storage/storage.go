package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an artifact does not exist in a Source.
var ErrNotFound = errors.New("artifact not found")

// Source is a read-only view over the artifacts written by the analysis
// pipeline. Names are relative to the source root and use forward slashes.
type Source interface {
	ReadFile(ctx context.Context, name string) ([]byte, error)
	List(ctx context.Context) ([]string, error)
}
