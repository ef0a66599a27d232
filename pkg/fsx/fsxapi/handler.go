package fsxapi

import (
	"path"
	"strings"

	"github.com/0Omaaar/iRecruitApp/pkg/fsx"
	"github.com/gofiber/fiber/v2"
)

// UploadsPrefix is both the URL prefix and the storage directory of public uploads
const UploadsPrefix = "uploads"

type Handlers struct {
	fs fsx.FileReader
}

func NewHandlers(fs fsx.FileReader) *Handlers {
	return &Handlers{fs: fs}
}

// ServeUpload streams a stored upload
// GET /uploads/*
func (h *Handlers) ServeUpload(c *fiber.Ctx) error {
	rel := strings.TrimPrefix(path.Clean("/"+c.Params("*")), "/")
	if rel == "" {
		return fsx.ErrInvalidPath()
	}

	rc, err := h.fs.ReadFileStream(c.Context(), path.Join(UploadsPrefix, rel))
	if err != nil {
		return err
	}

	c.Type(strings.TrimPrefix(path.Ext(rel), "."))
	return c.SendStream(rc)
}

func RegisterRoutes(app *fiber.App, handlers *Handlers) {
	app.Get("/"+UploadsPrefix+"/*", handlers.ServeUpload)
}
