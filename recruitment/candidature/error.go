package candidature

import (
	"net/http"

	"github.com/0Omaaar/iRecruitApp/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("CANDIDATURE")

var (
	CodeCandidatureNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Candidature not found")
	CodeMalformedDossier    = ErrRegistry.Register("MALFORMED_DOSSIER", errx.TypeInternal, http.StatusInternalServerError, "Stored candidature could not be decoded")
)

func ErrCandidatureNotFound() *errx.Error {
	return ErrRegistry.New(CodeCandidatureNotFound)
}

func ErrMalformedDossier() *errx.Error {
	return ErrRegistry.New(CodeMalformedDossier)
}
