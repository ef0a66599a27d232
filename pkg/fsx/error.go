package fsx

import (
	"net/http"

	"github.com/0Omaaar/iRecruitApp/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("FILE")

var (
	CodeFileNotFound    = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "File not found")
	CodeInvalidFileType = ErrRegistry.Register("INVALID_TYPE", errx.TypeValidation, http.StatusBadRequest, "Invalid file type")
	CodeFileTooLarge    = ErrRegistry.Register("TOO_LARGE", errx.TypeValidation, http.StatusBadRequest, "File size exceeds maximum allowed")
	CodeInvalidPath     = ErrRegistry.Register("INVALID_PATH", errx.TypeValidation, http.StatusBadRequest, "Invalid file path")
	CodeUploadFailed    = ErrRegistry.Register("UPLOAD_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to store file")
)

func ErrFileNotFound() *errx.Error {
	return ErrRegistry.New(CodeFileNotFound)
}

func ErrInvalidFileType() *errx.Error {
	return ErrRegistry.New(CodeInvalidFileType)
}

func ErrFileTooLarge() *errx.Error {
	return ErrRegistry.New(CodeFileTooLarge)
}

func ErrInvalidPath() *errx.Error {
	return ErrRegistry.New(CodeInvalidPath)
}

func ErrUploadFailed() *errx.Error {
	return ErrRegistry.New(CodeUploadFailed)
}
