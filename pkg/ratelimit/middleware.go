package ratelimit

import (
	"net/http"
	"strconv"

	"github.com/0Omaaar/iRecruitApp/pkg/errx"
	"github.com/0Omaaar/iRecruitApp/pkg/iam/auth"
	"github.com/gofiber/fiber/v2"
)

var ErrRegistry = errx.NewRegistry("RATE_LIMIT")

var CodeTooManyRequests = ErrRegistry.Register("EXCEEDED", errx.TypeRateLimit, http.StatusTooManyRequests, "Too many requests, please retry later")

func ErrTooManyRequests() *errx.Error {
	return ErrRegistry.New(CodeTooManyRequests)
}

// KeyFunc extracts the identity a request is counted against
type KeyFunc func(c *fiber.Ctx) string

// ByUserOrIP counts authenticated callers by user id and others by IP
func ByUserOrIP(c *fiber.Ctx) string {
	if ac, ok := auth.GetAuthContext(c); ok && ac.IsAuthenticated() {
		return "user:" + ac.UserID.String()
	}
	return "ip:" + c.IP()
}

// Middleware rejects requests over the limit with 429.
// scope separates counters of different routes.
func Middleware(l *RedisLimiter, scope string, key KeyFunc) fiber.Handler {
	if key == nil {
		key = ByUserOrIP
	}
	return func(c *fiber.Ctx) error {
		if l.Allow(c.UserContext(), scope+":"+key(c)) {
			return c.Next()
		}
		if w := l.Window(); w > 0 {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(w.Seconds())))
		}
		return ErrTooManyRequests().WithDetail("scope", scope)
	}
}
