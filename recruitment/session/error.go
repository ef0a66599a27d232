package session

import (
	"net/http"

	"github.com/0Omaaar/iRecruitApp/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("SESSION")

var (
	CodeSessionNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Session not found")
	CodeInvalidPayload  = ErrRegistry.Register("INVALID_PAYLOAD", errx.TypeValidation, http.StatusBadRequest, "Invalid session payload")
)

func ErrSessionNotFound() *errx.Error {
	return ErrRegistry.New(CodeSessionNotFound)
}

func ErrInvalidPayload() *errx.Error {
	return ErrRegistry.New(CodeInvalidPayload)
}
