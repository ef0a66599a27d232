package tranche

import (
	"net/http"

	"github.com/0Omaaar/iRecruitApp/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("TRANCHE")

var (
	CodeTrancheNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Tranche not found")
	CodeTrancheIDRequired    = ErrRegistry.Register("ID_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "Tranche id is required")
	CodeTrancheClosed        = ErrRegistry.Register("CLOSED", errx.TypeBusiness, http.StatusBadRequest, "Tranche is closed")
	CodeTrancheNotActive     = ErrRegistry.Register("NOT_ACTIVE", errx.TypeBusiness, http.StatusBadRequest, "Tranche is not active")
	CodeTrancheMisconfigured = ErrRegistry.Register("MISCONFIGURED", errx.TypeBusiness, http.StatusBadRequest, "Tranche is missing session or job offer")
	CodeOfferMismatch        = ErrRegistry.Register("OFFER_MISMATCH", errx.TypeBusiness, http.StatusBadRequest, "Job offer does not match tranche")
	CodeInvalidTrancheID     = ErrRegistry.Register("INVALID_ID", errx.TypeValidation, http.StatusBadRequest, "Invalid tranche id")
	CodeInvalidPayload       = ErrRegistry.Register("INVALID_PAYLOAD", errx.TypeValidation, http.StatusBadRequest, "Invalid tranche payload")
)

func ErrTrancheNotFound() *errx.Error {
	return ErrRegistry.New(CodeTrancheNotFound)
}

func ErrTrancheIDRequired() *errx.Error {
	return ErrRegistry.New(CodeTrancheIDRequired)
}

func ErrTrancheClosed() *errx.Error {
	return ErrRegistry.New(CodeTrancheClosed)
}

func ErrTrancheNotActive() *errx.Error {
	return ErrRegistry.New(CodeTrancheNotActive)
}

func ErrTrancheMisconfigured() *errx.Error {
	return ErrRegistry.New(CodeTrancheMisconfigured)
}

func ErrOfferMismatch() *errx.Error {
	return ErrRegistry.New(CodeOfferMismatch)
}

func ErrInvalidTrancheID() *errx.Error {
	return ErrRegistry.New(CodeInvalidTrancheID)
}

func ErrInvalidPayload() *errx.Error {
	return ErrRegistry.New(CodeInvalidPayload)
}
