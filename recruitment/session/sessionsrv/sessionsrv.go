package sessionsrv

import (
	"context"
	"time"

	"github.com/0Omaaar/iRecruitApp/pkg/errx"
	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
	"github.com/0Omaaar/iRecruitApp/pkg/validatex"
	"github.com/0Omaaar/iRecruitApp/recruitment/session"
	"github.com/google/uuid"
)

type SessionService struct {
	repo session.Repository
	now  func() time.Time
}

func NewSessionService(repo session.Repository) *SessionService {
	return &SessionService{repo: repo, now: time.Now}
}

func (s *SessionService) CreateSession(ctx context.Context, req session.CreateSessionRequest) (*session.Session, error) {
	res := validatex.Validate(req)
	start, startErr := validatex.ParseISODate(req.StartDate)
	end, endErr := validatex.ParseISODate(req.EndDate)
	if startErr == nil && endErr == nil && !start.Before(end) {
		res.Add("endDate", "gtfield", "must be after startDate")
	}
	if err := res.Err(session.ErrInvalidPayload()); err != nil {
		return nil, err
	}

	now := s.now()
	sess := &session.Session{
		ID:        kernel.NewSessionID(uuid.NewString()),
		YearLabel: req.YearLabel,
		IsActive:  req.IsActive,
		StartDate: start,
		EndDate:   end,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, errx.Wrap(err, "failed to create session", errx.TypeInternal)
	}
	return sess, nil
}

func (s *SessionService) GetSession(ctx context.Context, id kernel.SessionID) (*session.Session, error) {
	if !kernel.IsValidID(id.String()) {
		return nil, session.ErrSessionNotFound().WithDetail("id", id.String())
	}
	return s.repo.GetByID(ctx, id)
}

func (s *SessionService) ListSessions(ctx context.Context) ([]session.Session, error) {
	sessions, err := s.repo.List(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list sessions", errx.TypeInternal)
	}
	if sessions == nil {
		sessions = []session.Session{}
	}
	return sessions, nil
}

func (s *SessionService) Exists(ctx context.Context, id kernel.SessionID) (bool, error) {
	if !kernel.IsValidID(id.String()) {
		return false, nil
	}
	return s.repo.Exists(ctx, id)
}
