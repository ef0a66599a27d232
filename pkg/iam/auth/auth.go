package auth

import (
	"strings"

	"github.com/0Omaaar/iRecruitApp/pkg/iam/user"
	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

const authContextKey = "auth_context"

// AuthContext is the caller identity attached to a request
type AuthContext struct {
	UserID *kernel.UserID
	Email  kernel.Email
	Role   user.Role
	Scopes []string
}

// HasScope reports whether the context grants scope, honoring "*" and "resource:*"
func (a *AuthContext) HasScope(scope string) bool {
	resource, _, _ := strings.Cut(scope, ":")
	for _, s := range a.Scopes {
		switch {
		case s == ScopeAll, s == scope:
			return true
		case strings.HasSuffix(s, ":*") && strings.TrimSuffix(s, ":*") == resource:
			return true
		}
	}
	return false
}

func (a *AuthContext) IsAuthenticated() bool {
	return a != nil && a.UserID != nil && !a.UserID.IsEmpty()
}

// SetAuthContext stores the caller identity on the fiber context
func SetAuthContext(c *fiber.Ctx, ac *AuthContext) {
	c.Locals(authContextKey, ac)
}

// GetAuthContext returns the caller identity set by the middleware
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	ac, ok := c.Locals(authContextKey).(*AuthContext)
	if !ok || ac == nil {
		return nil, false
	}
	return ac, true
}
