package fsxlocal

import (
	"context"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/0Omaaar/iRecruitApp/pkg/fsx"
)

// LocalFileSystem stores files below a root directory on disk
type LocalFileSystem struct {
	root string
}

// NewLocalFileSystem creates a file system rooted at dir
func NewLocalFileSystem(root string) *LocalFileSystem {
	return &LocalFileSystem{root: filepath.Clean(root)}
}

func (l *LocalFileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}

// resolve maps a slash path to a disk path and refuses escapes from root
func (l *LocalFileSystem) resolve(p string) (string, error) {
	clean := path.Clean("/" + strings.ReplaceAll(p, "\\", "/"))
	if clean == "/" {
		return "", fsx.ErrInvalidPath().WithDetail("path", p)
	}
	return filepath.Join(l.root, filepath.FromSlash(clean)), nil
}

func (l *LocalFileSystem) WriteFile(ctx context.Context, p string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := l.resolve(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}

func (l *LocalFileSystem) WriteFileStream(ctx context.Context, p string, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := l.resolve(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	f, err := os.Create(full)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (l *LocalFileSystem) ReadFile(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := l.resolve(p)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fsx.ErrFileNotFound().WithDetail("path", p)
	}
	return data, err
}

func (l *LocalFileSystem) ReadFileStream(ctx context.Context, p string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := l.resolve(p)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fsx.ErrFileNotFound().WithDetail("path", p)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (l *LocalFileSystem) DeleteFile(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := l.resolve(p)
	if err != nil {
		return err
	}
	err = os.Remove(full)
	if errors.Is(err, os.ErrNotExist) {
		return fsx.ErrFileNotFound().WithDetail("path", p)
	}
	return err
}

func (l *LocalFileSystem) Exists(ctx context.Context, p string) (bool, error) {
	full, err := l.resolve(p)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(full)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}
