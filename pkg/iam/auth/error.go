package auth

import (
	"net/http"

	"github.com/0Omaaar/iRecruitApp/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("AUTH")

var (
	CodeMissingToken       = ErrRegistry.Register("MISSING_TOKEN", errx.TypeUnauthorized, http.StatusUnauthorized, "Missing authorization header")
	CodeInvalidToken       = ErrRegistry.Register("INVALID_TOKEN", errx.TypeUnauthorized, http.StatusUnauthorized, "Invalid or expired token")
	CodeInvalidCredentials = ErrRegistry.Register("INVALID_CREDENTIALS", errx.TypeUnauthorized, http.StatusUnauthorized, "Invalid email or password")
	CodeInactiveAccount    = ErrRegistry.Register("INACTIVE_ACCOUNT", errx.TypeAuthorization, http.StatusForbidden, "Account is disabled")
	CodeInvalidPayload     = ErrRegistry.Register("INVALID_PAYLOAD", errx.TypeValidation, http.StatusBadRequest, "Invalid login payload")
	CodeInsufficientScope  = ErrRegistry.Register("INSUFFICIENT_SCOPE", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
)

func ErrMissingToken() *errx.Error {
	return ErrRegistry.New(CodeMissingToken)
}

func ErrInvalidToken() *errx.Error {
	return ErrRegistry.New(CodeInvalidToken)
}

func ErrInvalidCredentials() *errx.Error {
	return ErrRegistry.New(CodeInvalidCredentials)
}

func ErrInactiveAccount() *errx.Error {
	return ErrRegistry.New(CodeInactiveAccount)
}

func ErrInsufficientScope() *errx.Error {
	return ErrRegistry.New(CodeInsufficientScope)
}

func ErrInvalidPayload() *errx.Error {
	return ErrRegistry.New(CodeInvalidPayload)
}
