package joboffer

import (
	"net/http"

	"github.com/0Omaaar/iRecruitApp/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("JOB_OFFER")

var (
	CodeJobOfferNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job offer not found")
	CodeOwnerRequired    = ErrRegistry.Register("OWNER_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "Owner is required to create a job offer")
	CodeImageRequired    = ErrRegistry.Register("IMAGE_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "Image is required to create a job offer")
	CodeInvalidPayload   = ErrRegistry.Register("INVALID_PAYLOAD", errx.TypeValidation, http.StatusBadRequest, "Invalid job offer payload")
	CodeJobOfferInUse    = ErrRegistry.Register("IN_USE", errx.TypeConflict, http.StatusConflict, "Job offer is still referenced")
)

func ErrJobOfferNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobOfferNotFound)
}

func ErrOwnerRequired() *errx.Error {
	return ErrRegistry.New(CodeOwnerRequired)
}

func ErrImageRequired() *errx.Error {
	return ErrRegistry.New(CodeImageRequired)
}

func ErrInvalidPayload() *errx.Error {
	return ErrRegistry.New(CodeInvalidPayload)
}

func ErrJobOfferInUse() *errx.Error {
	return ErrRegistry.New(CodeJobOfferInUse)
}
