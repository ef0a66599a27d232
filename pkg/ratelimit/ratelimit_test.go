package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/0Omaaar/iRecruitApp/pkg/errx"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
)

func newLimiter(t *testing.T, limit int, window time.Duration) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisLimiter(client, limit, window, "rl"), mr
}

func TestAllowWithinWindow(t *testing.T) {
	l, mr := newLimiter(t, 2, time.Minute)
	ctx := context.Background()

	if !l.Allow(ctx, "apply:user:1") || !l.Allow(ctx, "apply:user:1") {
		t.Fatal("expected the first two requests to pass")
	}
	if l.Allow(ctx, "apply:user:1") {
		t.Fatal("expected the third request to be rejected")
	}
	if !l.Allow(ctx, "apply:user:2") {
		t.Fatal("expected other keys to have their own counter")
	}

	if ttl := mr.TTL("rl:apply:user:1"); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("expected window ttl on the counter, got %v", ttl)
	}

	mr.FastForward(time.Minute + time.Second)
	if !l.Allow(ctx, "apply:user:1") {
		t.Fatal("expected a new window after expiry")
	}
}

func TestFailsOpen(t *testing.T) {
	l, mr := newLimiter(t, 1, time.Minute)
	mr.Close()

	for i := 0; i < 3; i++ {
		if !l.Allow(context.Background(), "k") {
			t.Fatal("expected requests to pass when redis is down")
		}
	}

	var nilLimiter *RedisLimiter
	if !nilLimiter.Allow(context.Background(), "k") {
		t.Fatal("expected nil limiter to allow")
	}
}

func TestMiddlewareRejectsWith429(t *testing.T) {
	l, _ := newLimiter(t, 1, 30*time.Second)

	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		if xe, ok := errx.As(err); ok {
			return c.Status(xe.HTTPStatus).JSON(xe.ToHTTPResponse())
		}
		return fiber.DefaultErrorHandler(c, err)
	}})
	app.Post("/login", Middleware(l, "login", nil), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("expected first request to pass, got %v (%v)", resp.StatusCode, err)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Retry-After") != "30" {
		t.Fatalf("expected Retry-After 30, got %q", resp.Header.Get("Retry-After"))
	}
}
