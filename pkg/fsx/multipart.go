package fsx

import (
	"io"
	"mime/multipart"
)

// FromMultipart reads the parts of form posted under the given fields.
// Missing fields are skipped.
func FromMultipart(form *multipart.Form, fields ...string) ([]UploadedFile, error) {
	if form == nil {
		return nil, nil
	}
	var files []UploadedFile
	for _, field := range fields {
		for _, fh := range form.File[field] {
			data, err := readPart(fh)
			if err != nil {
				return nil, ErrRegistry.NewWithCause(CodeUploadFailed, err).WithDetail("field", field)
			}
			files = append(files, UploadedFile{Field: field, Filename: fh.Filename, Data: data})
		}
	}
	return files, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
