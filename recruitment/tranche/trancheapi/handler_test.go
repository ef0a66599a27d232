package trancheapi

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
	"github.com/0Omaaar/iRecruitApp/recruitment/tranche"
	"github.com/0Omaaar/iRecruitApp/recruitment/tranche/tranchesrv"
	"github.com/gofiber/fiber/v2"
)

type memRepo struct {
	tranches map[kernel.TrancheID]tranche.Tranche
}

func (r *memRepo) Create(_ context.Context, t *tranche.Tranche) error {
	r.tranches[t.ID] = *t
	return nil
}
func (r *memRepo) GetByID(_ context.Context, id kernel.TrancheID) (*tranche.Tranche, error) {
	t, ok := r.tranches[id]
	if !ok {
		return nil, tranche.ErrTrancheNotFound()
	}
	return &t, nil
}
func (r *memRepo) ListByJobOffer(_ context.Context, id kernel.JobOfferID) ([]tranche.Tranche, error) {
	var out []tranche.Tranche
	for _, t := range r.tranches {
		if t.JobOfferID == id {
			out = append(out, t)
		}
	}
	return out, nil
}
func (r *memRepo) SetOpen(_ context.Context, id kernel.TrancheID, open bool) error {
	t, ok := r.tranches[id]
	if !ok {
		return tranche.ErrTrancheNotFound()
	}
	t.IsOpen = open
	r.tranches[id] = t
	return nil
}
func (r *memRepo) IncrementCandidates(context.Context, kernel.TrancheID) error { return nil }
func (r *memRepo) Exists(_ context.Context, id kernel.TrancheID) (bool, error) {
	_, ok := r.tranches[id]
	return ok, nil
}

type always bool

func (a always) Exists(context.Context, kernel.SessionID) (bool, error) { return bool(a), nil }

type alwaysOffer bool

func (a alwaysOffer) Exists(context.Context, kernel.JobOfferID) (bool, error) { return bool(a), nil }

func setup(t *testing.T) (*fiber.App, auth.TokenService, *memRepo) {
	t.Helper()

	repo := &memRepo{tranches: map[kernel.TrancheID]tranche.Tranche{}}
	svc := tranchesrv.NewTrancheService(repo, always(true), alwaysOffer(true))
	tokens := auth.NewJWTService("secret", time.Hour, "test")

	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		if xe, ok := errx.As(err); ok {
			return c.Status(xe.HTTPStatus).JSON(xe.ToHTTPResponse())
		}
		return fiber.DefaultErrorHandler(c, err)
	}})
	RegisterRoutes(app, NewHandlers(svc), auth.NewTokenMiddleware(tokens))
	return app, tokens, repo
}

func tokenFor(t *testing.T, tokens auth.TokenService, role user.Role) string {
	t.Helper()
	tok, err := tokens.GenerateAccessToken(user.User{ID: kernel.UserID(testfixtures.UUID(5)), Role: role})
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

const createBody = `{"name":"T1","sessionId":"00000000-0000-4000-8000-000000000002",
	"jobOfferId":"00000000-0000-4000-8000-000000000003",
	"startDate":"2025-03-01","endDate":"2025-03-31","isOpen":true}`

func TestCreateRequiresScope(t *testing.T) {
	t.Parallel()

	app, tokens, repo := setup(t)

	tests := []struct {
		name   string
		role   user.Role
		status int
	}{
		{"candidate forbidden", user.RoleCandidate, http.StatusForbidden},
		{"recruiter allowed", user.RoleRecruiter, http.StatusCreated},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/api/tranches", strings.NewReader(createBody))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, tokens, tt.role))
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != tt.status {
			t.Fatalf("%s: expected %d, got %d", tt.name, tt.status, resp.StatusCode)
		}
	}
	if len(repo.tranches) != 1 {
		t.Fatalf("expected one tranche, got %d", len(repo.tranches))
	}
}

func TestCloseThenListForOffer(t *testing.T) {
	t.Parallel()

	app, tokens, repo := setup(t)
	id := kernel.TrancheID(testfixtures.UUID(1))
	repo.tranches[id] = tranche.Tranche{
		ID:         id,
		JobOfferID: kernel.JobOfferID(testfixtures.UUID(3)),
		IsOpen:     true,
	}

	req := httptest.NewRequest(http.MethodPatch, "/api/tranches/"+id.String()+"/close", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, tokens, user.RoleAdmin))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/job-offers/"+testfixtures.UUID(3)+"/tranches", nil))
	if err != nil {
		t.Fatal(err)
	}
	var out []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0]["isOpen"] != false || out[0]["_id"] != id.String() {
		t.Fatalf("unexpected listing %v", out)
	}
}

func TestGetInvalidID(t *testing.T) {
	t.Parallel()

	app, _, _ := setup(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/tranches/not-a-uuid", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
