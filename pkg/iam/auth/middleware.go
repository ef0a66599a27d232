package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// TokenMiddleware authenticates requests carrying a bearer token
type TokenMiddleware struct {
	tokens TokenService
}

func NewTokenMiddleware(tokens TokenService) *TokenMiddleware {
	return &TokenMiddleware{tokens: tokens}
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

// Authenticate rejects requests without a valid token
func (m *TokenMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" {
			return ErrMissingToken()
		}
		token, ok := bearerToken(c)
		if !ok {
			return ErrInvalidToken().WithDetail("reason", "invalid authorization format")
		}

		claims, err := m.tokens.ValidateAccessToken(token)
		if err != nil {
			return err
		}

		SetAuthContext(c, claims.AuthContext())
		return c.Next()
	}
}

// OptionalAuthenticate attaches the caller when a valid token is present
// and lets anonymous or badly authenticated requests through.
func (m *TokenMiddleware) OptionalAuthenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token, ok := bearerToken(c); ok {
			if claims, err := m.tokens.ValidateAccessToken(token); err == nil {
				SetAuthContext(c, claims.AuthContext())
			}
		}
		return c.Next()
	}
}

// RequireScope must run after Authenticate
func (m *TokenMiddleware) RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ac, ok := GetAuthContext(c)
		if !ok {
			return ErrMissingToken()
		}
		if !ac.HasScope(scope) {
			return ErrInsufficientScope().WithDetail("required_scope", scope)
		}
		return c.Next()
	}
}
