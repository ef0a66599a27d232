package sessionapi

import (
	"github.com/0Omaaar/iRecruitApp/pkg/iam/auth"
	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
	"github.com/0Omaaar/iRecruitApp/recruitment/session"
	"github.com/0Omaaar/iRecruitApp/recruitment/session/sessionsrv"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	service *sessionsrv.SessionService
}

func NewHandlers(service *sessionsrv.SessionService) *Handlers {
	return &Handlers{service: service}
}

// POST /api/sessions
func (h *Handlers) CreateSession(c *fiber.Ctx) error {
	var req session.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return session.ErrInvalidPayload().WithDetail("parse_error", err.Error())
	}

	created, err := h.service.CreateSession(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// GET /api/sessions
func (h *Handlers) ListSessions(c *fiber.Ctx) error {
	sessions, err := h.service.ListSessions(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(sessions)
}

// GET /api/sessions/:id
func (h *Handlers) GetSession(c *fiber.Ctx) error {
	s, err := h.service.GetSession(c.Context(), kernel.SessionID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(s)
}

func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/sessions")

	api.Get("/", handlers.ListSessions)
	api.Get("/:id", handlers.GetSession)
	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeSessionsWrite),
		handlers.CreateSession,
	)
}
