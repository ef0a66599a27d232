package fsx

import (
	"context"
	"io"
)

// FileReader reads stored files
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)
}

// FileWriter writes stored files
type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
	WriteFileStream(ctx context.Context, path string, r io.Reader) error
}

// FileSystem is the storage abstraction shared by local disk and S3.
// Paths are slash separated and relative to the backend root.
type FileSystem interface {
	FileReader
	FileWriter

	Join(elem ...string) string
	DeleteFile(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
}
