package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Download when nothing is stored at the path.
var ErrNotFound = errors.New("file not found")

type FileStorage interface {
	// Upload stores a file and returns its path/key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download retrieves a file
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file
	Delete(ctx context.Context, path string) error

	// GetURL returns the public URL of a stored path
	GetURL(ctx context.Context, path string) (string, error)

	// Exists checks if file exists
	Exists(ctx context.Context, path string) (bool, error)

	// Ping checks the backing store is reachable and writable
	Ping(ctx context.Context) error
}
