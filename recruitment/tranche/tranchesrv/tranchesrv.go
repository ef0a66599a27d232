package tranchesrv

import (
	"context"
	"time"

	"github.com/0Omaaar/iRecruitApp/pkg/errx"
	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
	"github.com/0Omaaar/iRecruitApp/pkg/validatex"
	"github.com/0Omaaar/iRecruitApp/recruitment/tranche"
	"github.com/google/uuid"
)

type TrancheService struct {
	repo     tranche.Repository
	sessions tranche.SessionChecker
	offers   tranche.OfferChecker
	now      func() time.Time
}

func NewTrancheService(repo tranche.Repository, sessions tranche.SessionChecker, offers tranche.OfferChecker) *TrancheService {
	return &TrancheService{
		repo:     repo,
		sessions: sessions,
		offers:   offers,
		now:      time.Now,
	}
}

// WithClock overrides the time source, for tests
func (s *TrancheService) WithClock(now func() time.Time) *TrancheService {
	s.now = now
	return s
}

func (s *TrancheService) CreateTranche(ctx context.Context, req tranche.CreateTrancheRequest) (*tranche.Tranche, error) {
	res := validatex.Validate(req)
	start, startErr := validatex.ParseISODate(req.StartDate)
	end, endErr := validatex.ParseISODate(req.EndDate)
	if startErr == nil && endErr == nil && !start.Before(end) {
		res.Add("endDate", "gtfield", "must be after startDate")
	}

	if res.Valid() {
		sessionOK, err := s.sessions.Exists(ctx, kernel.SessionID(req.SessionID))
		if err != nil {
			return nil, errx.Wrap(err, "failed to check session", errx.TypeInternal)
		}
		if !sessionOK {
			res.Add("sessionId", "exists", "session does not exist")
		}
		offerOK, err := s.offers.Exists(ctx, kernel.JobOfferID(req.JobOfferID))
		if err != nil {
			return nil, errx.Wrap(err, "failed to check job offer", errx.TypeInternal)
		}
		if !offerOK {
			res.Add("jobOfferId", "exists", "job offer does not exist")
		}
	}
	if err := res.Err(tranche.ErrInvalidPayload()); err != nil {
		return nil, err
	}

	now := s.now()
	t := &tranche.Tranche{
		ID:            kernel.NewTrancheID(uuid.NewString()),
		Name:          req.Name,
		SessionID:     kernel.SessionID(req.SessionID),
		JobOfferID:    kernel.JobOfferID(req.JobOfferID),
		StartDate:     start,
		EndDate:       end,
		IsOpen:        req.IsOpen,
		MaxCandidates: req.MaxCandidates,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, errx.Wrap(err, "failed to create tranche", errx.TypeInternal)
	}
	return t, nil
}

func (s *TrancheService) GetTranche(ctx context.Context, id kernel.TrancheID) (*tranche.Tranche, error) {
	if !kernel.IsValidID(id.String()) {
		return nil, tranche.ErrInvalidTrancheID().WithDetail("id", id.String())
	}
	return s.repo.GetByID(ctx, id)
}

func (s *TrancheService) ListForJobOffer(ctx context.Context, offerID kernel.JobOfferID) ([]tranche.Tranche, error) {
	if !kernel.IsValidID(offerID.String()) {
		return []tranche.Tranche{}, nil
	}
	out, err := s.repo.ListByJobOffer(ctx, offerID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list tranches", errx.TypeInternal)
	}
	if out == nil {
		out = []tranche.Tranche{}
	}
	return out, nil
}

// SetOpen opens or closes a tranche and returns its new state
func (s *TrancheService) SetOpen(ctx context.Context, id kernel.TrancheID, open bool) (*tranche.Tranche, error) {
	if !kernel.IsValidID(id.String()) {
		return nil, tranche.ErrInvalidTrancheID().WithDetail("id", id.String())
	}
	if err := s.repo.SetOpen(ctx, id, open); err != nil {
		return nil, errx.Wrap(err, "failed to update tranche", errx.TypeInternal)
	}
	return s.repo.GetByID(ctx, id)
}

// Admit loads the tranche and runs the admission checks against it.
// It covers steps up to the offer assertion; the candidature lookup belongs to the caller.
func (s *TrancheService) Admit(ctx context.Context, id kernel.TrancheID, assertedOffer kernel.JobOfferID) (*tranche.Tranche, error) {
	if id.IsEmpty() {
		return nil, tranche.ErrTrancheIDRequired()
	}
	if !kernel.IsValidID(id.String()) {
		return nil, tranche.ErrTrancheNotFound().WithDetail("id", id.String())
	}
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := tranche.CheckAdmission(t, s.now(), assertedOffer); err != nil {
		return nil, err
	}
	return t, nil
}

// RecordApplication bumps the soft counter after an application is stored
func (s *TrancheService) RecordApplication(ctx context.Context, id kernel.TrancheID) error {
	if err := s.repo.IncrementCandidates(ctx, id); err != nil {
		return errx.Wrap(err, "failed to increment tranche counter", errx.TypeInternal)
	}
	return nil
}
