package exportapi

import (
	"fmt"

	"github.com/0Omaaar/iRecruitApp/pkg/iam/auth"
	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
	"github.com/0Omaaar/iRecruitApp/recruitment/application"
	"github.com/0Omaaar/iRecruitApp/recruitment/export"
	"github.com/0Omaaar/iRecruitApp/recruitment/export/exportsrv"
	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handlers struct {
	service *exportsrv.Service
}

func NewHandlers(service *exportsrv.Service) *Handlers {
	return &Handlers{service: service}
}

// RequestExport queues a spreadsheet of a tranche's candidates
// POST /api/application/tranche/:trancheId/export
func (h *Handlers) RequestExport(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok || !authContext.IsAuthenticated() {
		return application.ErrAuthRequired()
	}

	job, err := h.service.RequestExport(c.Context(), kernel.TrancheID(c.Params("trancheId")), *authContext.UserID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(export.NewJobStatusResponse(*job))
}

// GET /api/exports/:id
func (h *Handlers) GetJob(c *fiber.Ctx) error {
	job, err := h.service.GetJob(c.Context(), kernel.ExportJobID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(export.NewJobStatusResponse(*job))
}

// GET /api/exports/:id/download
func (h *Handlers) Download(c *fiber.Ctx) error {
	job, rc, err := h.service.OpenDownload(c.Context(), kernel.ExportJobID(c.Params("id")))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, job.FileName()))
	// fasthttp closes rc once the body has been written
	return c.SendStream(rc)
}

func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	canExport := []fiber.Handler{
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeApplicationsExport),
	}

	app.Post("/api/application/tranche/:trancheId/export", append(canExport, handlers.RequestExport)...)

	exports := app.Group("/api/exports")
	exports.Get("/:id", append(canExport, handlers.GetJob)...)
	exports.Get("/:id/download", append(canExport, handlers.Download)...)
}
