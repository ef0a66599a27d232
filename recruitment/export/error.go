package export

import (
	"net/http"

	"github.com/0Omaaar/iRecruitApp/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("EXPORT")

var (
	CodeJobNotFound        = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Export job not found")
	CodeJobNotReady        = ErrRegistry.Register("NOT_READY", errx.TypeBusiness, http.StatusBadRequest, "Export is not ready for download")
	CodeJobCreationFailed  = ErrRegistry.Register("CREATION_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to create export job")
	CodeQueueEnqueueFailed = ErrRegistry.Register("ENQUEUE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to queue export job")
	CodeJobFailed          = ErrRegistry.Register("JOB_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Export attempt failed")
	CodeMaxRetriesReached  = ErrRegistry.Register("MAX_RETRIES", errx.TypeInternal, http.StatusInternalServerError, "Export failed after maximum attempts")
)

func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrJobNotReady() *errx.Error {
	return ErrRegistry.New(CodeJobNotReady)
}

func ErrJobCreationFailed() *errx.Error {
	return ErrRegistry.New(CodeJobCreationFailed)
}

func ErrQueueEnqueueFailed() *errx.Error {
	return ErrRegistry.New(CodeQueueEnqueueFailed)
}

func ErrJobFailed() *errx.Error {
	return ErrRegistry.New(CodeJobFailed)
}

func ErrMaxRetriesReached() *errx.Error {
	return ErrRegistry.New(CodeMaxRetriesReached)
}
