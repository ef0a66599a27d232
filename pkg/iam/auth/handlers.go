package auth

import (
	"github.com/0Omaaar/iRecruitApp/pkg/validatex"
	"github.com/gofiber/fiber/v2"
)

type AuthHandlers struct {
	service *AuthService
}

func NewAuthHandlers(service *AuthService) *AuthHandlers {
	return &AuthHandlers{service: service}
}

// Login exchanges credentials for an access token
// POST /api/auth/login
func (h *AuthHandlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrInvalidPayload().WithDetail("parse_error", err.Error())
	}
	if err := validatex.Validate(req).Err(ErrInvalidPayload()); err != nil {
		return err
	}

	resp, err := h.service.Login(c.Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Me returns the authenticated account
// GET /api/auth/me
func (h *AuthHandlers) Me(c *fiber.Ctx) error {
	ac, ok := GetAuthContext(c)
	if !ok || !ac.IsAuthenticated() {
		return ErrMissingToken()
	}
	u, err := h.service.Me(c.Context(), *ac.UserID)
	if err != nil {
		return err
	}
	return c.JSON(u)
}

// RegisterRoutes registers authentication routes; limiter may be nil
func RegisterRoutes(app *fiber.App, handlers *AuthHandlers, mw *TokenMiddleware, limiter fiber.Handler) {
	group := app.Group("/api/auth")

	login := []fiber.Handler{}
	if limiter != nil {
		login = append(login, limiter)
	}
	login = append(login, handlers.Login)
	group.Post("/login", login...)

	group.Get("/me", mw.Authenticate(), handlers.Me)
}
