package jobofferapi

import (
	"encoding/json"
	"strings"

	"github.com/0Omaaar/iRecruitApp/pkg/fsx"
	"github.com/0Omaaar/iRecruitApp/pkg/iam/auth"
	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
	"github.com/0Omaaar/iRecruitApp/recruitment/joboffer"
	"github.com/0Omaaar/iRecruitApp/recruitment/joboffer/joboffersrv"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	service *joboffersrv.JobOfferService
}

func NewHandlers(service *joboffersrv.JobOfferService) *Handlers {
	return &Handlers{service: service}
}

// CreateJobOffer creates a job offer owned by the caller
// POST /api/job-offers
func (h *Handlers) CreateJobOffer(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok || !authContext.IsAuthenticated() {
		return joboffer.ErrOwnerRequired()
	}

	var req joboffer.CreateJobOfferRequest
	images, err := parseOfferPayload(c, &req)
	if err != nil {
		return err
	}

	offer, err := h.service.CreateJobOffer(c.Context(), req, *authContext.UserID, images)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(offer)
}

// ListJobOffers lists offers, hiding the ones the caller applied to
// GET /api/job-offers
func (h *Handlers) ListJobOffers(c *fiber.Ctx) error {
	var caller *kernel.UserID
	if authContext, ok := auth.GetAuthContext(c); ok {
		caller = authContext.UserID
	}

	offers, err := h.service.ListJobOffers(c.Context(), caller)
	if err != nil {
		return err
	}

	return c.JSON(offers)
}

// SearchJobOffers is the filtered, paginated back-office listing
// GET /api/job-offers/admin
func (h *Handlers) SearchJobOffers(c *fiber.Ctx) error {
	q := joboffer.AdminListQuery{
		Page:       c.QueryInt("page", joboffer.DefaultAdminPage),
		Limit:      c.QueryInt("limit", joboffer.DefaultAdminLimit),
		Title:      c.Query("title"),
		Date:       c.Query("date"),
		City:       c.Query("city"),
		Department: c.Query("department"),
	}

	resp, err := h.service.SearchJobOffers(c.Context(), q)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// GetJobOffer retrieves one offer
// GET /api/job-offers/:id
func (h *Handlers) GetJobOffer(c *fiber.Ctx) error {
	offer, err := h.service.GetJobOffer(c.Context(), kernel.JobOfferID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(offer)
}

// UpdateJobOffer applies a partial update
// PATCH /api/job-offers/:id
func (h *Handlers) UpdateJobOffer(c *fiber.Ctx) error {
	var req joboffer.UpdateJobOfferRequest
	images, err := parseOfferPayload(c, &req)
	if err != nil {
		return err
	}

	offer, err := h.service.UpdateJobOffer(c.Context(), kernel.JobOfferID(c.Params("id")), req, images)
	if err != nil {
		return err
	}
	return c.JSON(offer)
}

// DeleteJobOffer deletes an offer and echoes it back
// DELETE /api/job-offers/:id
func (h *Handlers) DeleteJobOffer(c *fiber.Ctx) error {
	offer, err := h.service.DeleteJobOffer(c.Context(), kernel.JobOfferID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(offer)
}

// ============================================================================
// Helper Functions
// ============================================================================

// parseOfferPayload accepts a JSON body, or a multipart form carrying the
// JSON in a "data" field plus an optional "image" file.
func parseOfferPayload(c *fiber.Ctx, dst any) ([]fsx.UploadedFile, error) {
	contentType := string(c.Request().Header.ContentType())
	if !strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		if len(c.Body()) == 0 {
			return nil, nil
		}
		if err := c.BodyParser(dst); err != nil {
			return nil, joboffer.ErrInvalidPayload().WithDetail("parse_error", err.Error())
		}
		return nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, joboffer.ErrInvalidPayload().WithDetail("parse_error", err.Error())
	}
	if data := form.Value["data"]; len(data) > 0 {
		if err := json.Unmarshal([]byte(data[0]), dst); err != nil {
			return nil, joboffer.ErrInvalidPayload().WithDetail("parse_error", err.Error())
		}
	}

	return fsx.FromMultipart(form, "image")
}

// RegisterRoutes registers job offer routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/job-offers")

	api.Get("/",
		authMiddleware.OptionalAuthenticate(),
		handlers.ListJobOffers,
	)

	// before /:id so that "admin" is not read as an id
	api.Get("/admin", handlers.SearchJobOffers)

	api.Get("/:id", handlers.GetJobOffer)

	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobOffersWrite),
		handlers.CreateJobOffer,
	)

	api.Patch("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobOffersWrite),
		handlers.UpdateJobOffer,
	)

	api.Delete("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobOffersDelete),
		handlers.DeleteJobOffer,
	)
}
