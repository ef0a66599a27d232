package application

import (
	"net/http"

	"github.com/0Omaaar/iRecruitApp/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("APPLICATION")

var (
	CodeApplicationNotFound   = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Application not found")
	CodeInvalidApplicationID  = ErrRegistry.Register("INVALID_ID", errx.TypeValidation, http.StatusBadRequest, "Invalid application id")
	CodeInvalidPayload        = ErrRegistry.Register("INVALID_PAYLOAD", errx.TypeValidation, http.StatusBadRequest, "Invalid application payload")
	CodeCandidatureNotFound   = ErrRegistry.Register("CANDIDATURE_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Candidature for application user not found")
	CodeCandidateEmailMissing = ErrRegistry.Register("CANDIDATE_EMAIL_MISSING", errx.TypeNotFound, http.StatusNotFound, "Candidate email not found in candidature")
	CodeNotificationFailed    = ErrRegistry.Register("NOTIFICATION_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to send notification email")
	CodeNotOwner              = ErrRegistry.Register("NOT_OWNER", errx.TypeAuthorization, http.StatusForbidden, "Application belongs to another user")
	CodeAuthRequired          = ErrRegistry.Register("AUTH_REQUIRED", errx.TypeUnauthorized, http.StatusUnauthorized, "Authentication required")
)

func ErrApplicationNotFound() *errx.Error {
	return ErrRegistry.New(CodeApplicationNotFound)
}

func ErrInvalidApplicationID() *errx.Error {
	return ErrRegistry.New(CodeInvalidApplicationID)
}

func ErrInvalidPayload() *errx.Error {
	return ErrRegistry.New(CodeInvalidPayload)
}

func ErrCandidatureNotFound() *errx.Error {
	return ErrRegistry.New(CodeCandidatureNotFound)
}

func ErrCandidateEmailMissing() *errx.Error {
	return ErrRegistry.New(CodeCandidateEmailMissing)
}

func ErrNotificationFailed() *errx.Error {
	return ErrRegistry.New(CodeNotificationFailed)
}

func ErrNotOwner() *errx.Error {
	return ErrRegistry.New(CodeNotOwner)
}

func ErrAuthRequired() *errx.Error {
	return ErrRegistry.New(CodeAuthRequired)
}
