package sessionapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/0Omaaar/iRecruitApp/internal/testfixtures"
	"github.com/0Omaaar/iRecruitApp/pkg/errx"
	"github.com/0Omaaar/iRecruitApp/pkg/iam/auth"
	"github.com/0Omaaar/iRecruitApp/pkg/iam/user"
	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
	"github.com/0Omaaar/iRecruitApp/recruitment/session"
	"github.com/0Omaaar/iRecruitApp/recruitment/session/sessionsrv"
	"github.com/gofiber/fiber/v2"
)

type memRepo struct {
	sessions []session.Session
}

func (r *memRepo) Create(_ context.Context, s *session.Session) error {
	r.sessions = append(r.sessions, *s)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id kernel.SessionID) (*session.Session, error) {
	for _, s := range r.sessions {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, session.ErrSessionNotFound()
}

func (r *memRepo) List(context.Context) ([]session.Session, error) { return r.sessions, nil }

func (r *memRepo) Exists(ctx context.Context, id kernel.SessionID) (bool, error) {
	_, err := r.GetByID(ctx, id)
	return err == nil, nil
}

func setup(t *testing.T) (*fiber.App, auth.TokenService) {
	t.Helper()

	tokens := auth.NewJWTService("secret", time.Hour, "test")
	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		if xe, ok := errx.As(err); ok {
			return c.Status(xe.HTTPStatus).JSON(xe.ToHTTPResponse())
		}
		return fiber.DefaultErrorHandler(c, err)
	}})
	RegisterRoutes(app, NewHandlers(sessionsrv.NewSessionService(&memRepo{})), auth.NewTokenMiddleware(tokens))
	return app, tokens
}

func post(t *testing.T, app *fiber.App, tokens auth.TokenService, role user.Role, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	tok, err := tokens.GenerateAccessToken(user.User{ID: kernel.UserID(testfixtures.UUID(1)), Role: role})
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

const validBody = `{"yearLabel":"2025-2026","startDate":"2025-09-01","endDate":"2026-07-31"}`

func TestCreateThenGet(t *testing.T) {
	t.Parallel()

	app, tokens := setup(t)

	resp := post(t, app, tokens, user.RoleAdmin, validBody)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	id, _ := created["_id"].(string)
	if id == "" || created["yearLabel"] != "2025-2026" {
		t.Fatalf("unexpected session %v", created)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/sessions/"+id, nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestCreateRejections(t *testing.T) {
	t.Parallel()

	app, tokens := setup(t)

	tests := []struct {
		name   string
		role   user.Role
		body   string
		status int
	}{
		{"candidate forbidden", user.RoleCandidate, validBody, http.StatusForbidden},
		{"recruiter lacks write scope", user.RoleRecruiter, validBody, http.StatusForbidden},
		{"end before start", user.RoleAdmin, `{"yearLabel":"x","startDate":"2026-01-01","endDate":"2025-01-01"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		if resp := post(t, app, tokens, tt.role, tt.body); resp.StatusCode != tt.status {
			t.Fatalf("%s: expected %d, got %d", tt.name, tt.status, resp.StatusCode)
		}
	}
}

func TestGetUnknownSession(t *testing.T) {
	t.Parallel()

	app, _ := setup(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/sessions/"+testfixtures.UUID(9), nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
