package user

import (
	"net/http"

	"github.com/0Omaaar/iRecruitApp/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("USER")

var (
	CodeUserNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "User not found")
	CodeEmailTaken   = ErrRegistry.Register("EMAIL_TAKEN", errx.TypeConflict, http.StatusConflict, "Email already registered")
)

func ErrUserNotFound() *errx.Error {
	return ErrRegistry.New(CodeUserNotFound)
}

func ErrEmailTaken() *errx.Error {
	return ErrRegistry.New(CodeEmailTaken)
}
