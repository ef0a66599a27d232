package applicationapi

import (
	"strings"

	"github.com/0Omaaar/iRecruitApp/pkg/fsx"
	"github.com/0Omaaar/iRecruitApp/pkg/iam/auth"
	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
	"github.com/0Omaaar/iRecruitApp/recruitment/application"
	"github.com/0Omaaar/iRecruitApp/recruitment/application/applicationsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for application operations
type Handlers struct {
	service *applicationsrv.ApplicationService
}

func NewHandlers(service *applicationsrv.ApplicationService) *Handlers {
	return &Handlers{service: service}
}

func caller(c *fiber.Ctx) (*auth.AuthContext, error) {
	authContext, ok := auth.GetAuthContext(c)
	if !ok || !authContext.IsAuthenticated() {
		return nil, application.ErrAuthRequired()
	}
	return authContext, nil
}

// CreateApplication submits the caller's application to a tranche
// POST /api/application
func (h *Handlers) CreateApplication(c *fiber.Ctx) error {
	authContext, err := caller(c)
	if err != nil {
		return err
	}

	var req application.CreateApplicationRequest
	var files []fsx.UploadedFile

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return application.ErrInvalidPayload().WithDetail("parse_error", err.Error())
		}
		req.TrancheID = firstValue(form.Value, "trancheId")
		req.OfferID = firstValue(form.Value, "offerId")
		req.ApplicationDiploma = firstValue(form.Value, "applicationDiploma")

		files, err = fsx.FromMultipart(form, application.FieldDeclarationPdf, application.FieldMotivationLetterPdf)
		if err != nil {
			return err
		}
	} else if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidPayload().WithDetail("parse_error", err.Error())
	}

	app, err := h.service.CreateApplication(c.Context(), req, *authContext.UserID, files)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(application.NewApplicationResponse(*app))
}

func firstValue(values map[string][]string, key string) string {
	if v := values[key]; len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

// GET /api/application
func (h *Handlers) ListApplications(c *fiber.Ctx) error {
	apps, err := h.service.FindAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(application.NewApplicationResponses(apps))
}

// GET /api/application/me
func (h *Handlers) ListMyApplications(c *fiber.Ctx) error {
	authContext, err := caller(c)
	if err != nil {
		return err
	}
	apps, err := h.service.FindByUser(c.Context(), *authContext.UserID)
	if err != nil {
		return err
	}
	return c.JSON(application.NewApplicationResponses(apps))
}

// ListTrancheCandidates returns the candidate profiles of a tranche
// GET /api/application/tranche/:trancheId
func (h *Handlers) ListTrancheCandidates(c *fiber.Ctx) error {
	profiles, err := h.service.FindByTranche(c.Context(), kernel.TrancheID(c.Params("trancheId")))
	if err != nil {
		return err
	}
	return c.JSON(profiles)
}

// GetApplication is open to the owner and to reviewers
// GET /api/application/:id
func (h *Handlers) GetApplication(c *fiber.Ctx) error {
	authContext, err := caller(c)
	if err != nil {
		return err
	}
	app, err := h.service.FindOne(c.Context(), kernel.ApplicationID(c.Params("id")))
	if err != nil {
		return err
	}
	if !app.IsOwnedBy(*authContext.UserID) && !authContext.HasScope(auth.ScopeApplicationsRead) {
		return application.ErrNotOwner()
	}
	return c.JSON(application.NewApplicationResponse(*app))
}

// PATCH /api/application/:id
func (h *Handlers) UpdateApplication(c *fiber.Ctx) error {
	var req application.UpdateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidPayload().WithDetail("parse_error", err.Error())
	}
	app, err := h.service.Update(c.Context(), kernel.ApplicationID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return c.JSON(application.NewApplicationResponse(*app))
}

// DELETE /api/application/:id
func (h *Handlers) DeleteApplication(c *fiber.Ctx) error {
	if err := h.service.Remove(c.Context(), kernel.ApplicationID(c.Params("id"))); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AcceptApplication accepts and emails the candidate; the body carries an optional message
// PATCH /api/application/:id/accept
func (h *Handlers) AcceptApplication(c *fiber.Ctx) error {
	var req application.AcceptApplicationRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return application.ErrInvalidPayload().WithDetail("parse_error", err.Error())
		}
	}
	app, err := h.service.AcceptApplication(c.Context(), kernel.ApplicationID(c.Params("id")), req.Message)
	if err != nil {
		return err
	}
	return c.JSON(application.NewApplicationResponse(*app))
}

// PATCH /api/application/:id/reject
func (h *Handlers) RejectApplication(c *fiber.Ctx) error {
	app, err := h.service.RejectApplication(c.Context(), kernel.ApplicationID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(application.NewApplicationResponse(*app))
}

// RegisterRoutes mounts /api/application. submitLimiter may be nil.
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware, submitLimiter fiber.Handler) {
	api := app.Group("/api/application", authMiddleware.Authenticate())

	submit := []fiber.Handler{authMiddleware.RequireScope(auth.ScopeApplicationsApply)}
	if submitLimiter != nil {
		submit = append(submit, submitLimiter)
	}
	api.Post("/", append(submit, handlers.CreateApplication)...)

	api.Get("/", authMiddleware.RequireScope(auth.ScopeApplicationsRead), handlers.ListApplications)
	api.Get("/me", handlers.ListMyApplications)
	api.Get("/tranche/:trancheId", authMiddleware.RequireScope(auth.ScopeApplicationsRead), handlers.ListTrancheCandidates)

	api.Get("/:id", handlers.GetApplication)
	api.Patch("/:id", authMiddleware.RequireScope(auth.ScopeApplicationsWrite), handlers.UpdateApplication)
	api.Delete("/:id", authMiddleware.RequireScope(auth.ScopeApplicationsDelete), handlers.DeleteApplication)
	api.Patch("/:id/accept", authMiddleware.RequireScope(auth.ScopeApplicationsApprove), handlers.AcceptApplication)
	api.Patch("/:id/reject", authMiddleware.RequireScope(auth.ScopeApplicationsApprove), handlers.RejectApplication)
}
