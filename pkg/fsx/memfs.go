package fsx

import (
	"bytes"
	"context"
	"io"
	"path"
	"sync"
)

// MemFileSystem keeps files in memory. Used by tests and local tooling.
type MemFileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewMemFileSystem() *MemFileSystem {
	return &MemFileSystem{files: make(map[string][]byte)}
}

func (m *MemFileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}

func (m *MemFileSystem) WriteFile(_ context.Context, p string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[p] = append([]byte(nil), data...)
	return nil
}

func (m *MemFileSystem) WriteFileStream(ctx context.Context, p string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return m.WriteFile(ctx, p, data)
}

func (m *MemFileSystem) ReadFile(_ context.Context, p string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[p]
	if !ok {
		return nil, ErrFileNotFound().WithDetail("path", p)
	}
	return append([]byte(nil), data...), nil
}

func (m *MemFileSystem) ReadFileStream(ctx context.Context, p string) (io.ReadCloser, error) {
	data, err := m.ReadFile(ctx, p)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MemFileSystem) DeleteFile(_ context.Context, p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[p]; !ok {
		return ErrFileNotFound().WithDetail("path", p)
	}
	delete(m.files, p)
	return nil
}

func (m *MemFileSystem) Exists(_ context.Context, p string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[p]
	return ok, nil
}

// Paths lists the stored paths
func (m *MemFileSystem) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.files))
	for p := range m.files {
		out = append(out, p)
	}
	return out
}
