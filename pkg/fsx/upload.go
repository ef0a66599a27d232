package fsx

import (
	"context"
	"path"
	"strings"

	"github.com/0Omaaar/iRecruitApp/pkg/logx"
	"github.com/google/uuid"
)

// UploadedFile is one multipart part handed to the Uploader
type UploadedFile struct {
	Field    string // form field name, e.g. "declarationPdf"
	Filename string // client file name, only its extension is kept
	Data     []byte
}

// Ext returns the lower-cased extension without the dot
func (f UploadedFile) Ext() string {
	return strings.TrimPrefix(strings.ToLower(path.Ext(f.Filename)), ".")
}

// Uploader stores multipart uploads under a directory with an extension allow-list
type Uploader struct {
	fs      FileSystem
	maxSize int
	newName func() string
}

// DefaultMaxUploadSize is the per-file limit (10MB)
const DefaultMaxUploadSize = 10 * 1024 * 1024

// NewUploader creates an uploader on top of fs
func NewUploader(fs FileSystem) *Uploader {
	return &Uploader{
		fs:      fs,
		maxSize: DefaultMaxUploadSize,
		newName: uuid.NewString,
	}
}

// FileSystem returns the backend the uploader writes to
func (u *Uploader) FileSystem() FileSystem {
	return u.fs
}

// Upload validates every file first, then stores them under dir.
// The result maps each form field to the stored path.
func (u *Uploader) Upload(ctx context.Context, dir string, files []UploadedFile, allowedExts []string) (map[string]string, error) {
	paths := make(map[string]string, len(files))
	if len(files) == 0 {
		return paths, nil
	}

	allowed := make(map[string]bool, len(allowedExts))
	for _, ext := range allowedExts {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}

	for _, f := range files {
		if !allowed[f.Ext()] {
			return nil, ErrInvalidFileType().
				WithDetail("field", f.Field).
				WithDetail("file_name", f.Filename).
				WithDetail("allowed", allowedExts)
		}
		if len(f.Data) > u.maxSize {
			return nil, ErrFileTooLarge().
				WithDetail("field", f.Field).
				WithDetail("file_size", len(f.Data)).
				WithDetail("max_size", u.maxSize)
		}
	}

	for _, f := range files {
		name := u.newName() + "." + f.Ext()
		if f.Field != "" {
			name = f.Field + "-" + name
		}
		storagePath := u.fs.Join(dir, name)
		if err := u.fs.WriteFile(ctx, storagePath, f.Data); err != nil {
			u.Discard(ctx, paths)
			return nil, ErrRegistry.NewWithCause(CodeUploadFailed, err).WithDetail("field", f.Field)
		}
		paths[f.Field] = storagePath
	}

	return paths, nil
}

// Discard removes files stored by a previous Upload.
// Failures are logged; the caller is already on an error path.
func (u *Uploader) Discard(ctx context.Context, paths map[string]string) {
	for field, p := range paths {
		if p == "" {
			continue
		}
		if err := u.fs.DeleteFile(ctx, p); err != nil {
			logx.Warn("failed to discard upload", "field", field, "path", p, "error", err)
		}
	}
}

// PublicPath normalizes a stored path to the "/uploads/..." form served over HTTP
func PublicPath(p string) string {
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, "\\", "/")
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}
