package trancheapi

import (
	"github.com/0Omaaar/iRecruitApp/pkg/iam/auth"
	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
	"github.com/0Omaaar/iRecruitApp/recruitment/tranche"
	"github.com/0Omaaar/iRecruitApp/recruitment/tranche/tranchesrv"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	service *tranchesrv.TrancheService
}

func NewHandlers(service *tranchesrv.TrancheService) *Handlers {
	return &Handlers{service: service}
}

// POST /api/tranches
func (h *Handlers) CreateTranche(c *fiber.Ctx) error {
	var req tranche.CreateTrancheRequest
	if err := c.BodyParser(&req); err != nil {
		return tranche.ErrInvalidPayload().WithDetail("parse_error", err.Error())
	}
	t, err := h.service.CreateTranche(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

// GET /api/tranches/:id
func (h *Handlers) GetTranche(c *fiber.Ctx) error {
	t, err := h.service.GetTranche(c.Context(), kernel.TrancheID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(t)
}

// GET /api/job-offers/:id/tranches
func (h *Handlers) ListForJobOffer(c *fiber.Ctx) error {
	out, err := h.service.ListForJobOffer(c.Context(), kernel.JobOfferID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// PATCH /api/tranches/:id/open
func (h *Handlers) OpenTranche(c *fiber.Ctx) error {
	return h.setOpen(c, true)
}

// PATCH /api/tranches/:id/close
func (h *Handlers) CloseTranche(c *fiber.Ctx) error {
	return h.setOpen(c, false)
}

func (h *Handlers) setOpen(c *fiber.Ctx, open bool) error {
	t, err := h.service.SetOpen(c.Context(), kernel.TrancheID(c.Params("id")), open)
	if err != nil {
		return err
	}
	return c.JSON(t)
}

func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	app.Get("/api/job-offers/:id/tranches", handlers.ListForJobOffer)

	api := app.Group("/api/tranches")
	api.Get("/:id", handlers.GetTranche)

	canWrite := []fiber.Handler{authMiddleware.Authenticate(), authMiddleware.RequireScope(auth.ScopeTranchesWrite)}
	api.Post("/", append(canWrite, handlers.CreateTranche)...)
	api.Patch("/:id/open", append(canWrite, handlers.OpenTranche)...)
	api.Patch("/:id/close", append(canWrite, handlers.CloseTranche)...)
}
