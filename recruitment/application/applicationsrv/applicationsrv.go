package applicationsrv

import (
	"context"
	"errors"
	"time"

	"github.com/0Omaaar/iRecruitApp/pkg/errx"
	"github.com/0Omaaar/iRecruitApp/pkg/fsx"
	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
	"github.com/0Omaaar/iRecruitApp/pkg/logx"
	"github.com/0Omaaar/iRecruitApp/pkg/mailx"
	"github.com/0Omaaar/iRecruitApp/pkg/validatex"
	"github.com/0Omaaar/iRecruitApp/recruitment/application"
	"github.com/0Omaaar/iRecruitApp/recruitment/candidature"
	"github.com/0Omaaar/iRecruitApp/recruitment/tranche"
	"github.com/google/uuid"
)

var attachmentExts = []string{"pdf"}

// ApplicationService provides business operations for applications
type ApplicationService struct {
	repo         application.Repository
	candidatures candidature.Repository
	tranches     application.TrancheGate
	offers       application.OfferReader
	uploader     *fsx.Uploader
	mailer       mailx.Mailer
	supportEmail string
	now          func() time.Time
}

func NewApplicationService(
	repo application.Repository,
	candidatures candidature.Repository,
	tranches application.TrancheGate,
	offers application.OfferReader,
	uploader *fsx.Uploader,
	mailer mailx.Mailer,
) *ApplicationService {
	return &ApplicationService{
		repo:         repo,
		candidatures: candidatures,
		tranches:     tranches,
		offers:       offers,
		uploader:     uploader,
		mailer:       mailer,
		supportEmail: mailx.DefaultSupportEmail,
		now:          time.Now,
	}
}

// WithClock overrides the time source, for tests
func (s *ApplicationService) WithClock(now func() time.Time) *ApplicationService {
	s.now = now
	return s
}

// WithSupportEmail sets the contact address printed in notifications
func (s *ApplicationService) WithSupportEmail(email string) *ApplicationService {
	if email != "" {
		s.supportEmail = email
	}
	return s
}

// ============================================================================
// Submission
// ============================================================================

// CreateApplication admits the caller into a tranche and stores the submission.
// The offer and session always come from the tranche.
func (s *ApplicationService) CreateApplication(
	ctx context.Context,
	req application.CreateApplicationRequest,
	userID kernel.UserID,
	files []fsx.UploadedFile,
) (*application.Application, error) {
	if userID.IsEmpty() {
		return nil, application.ErrAuthRequired()
	}

	t, err := s.tranches.Admit(ctx, kernel.TrancheID(req.TrancheID), kernel.JobOfferID(req.OfferID))
	if err != nil {
		return nil, err
	}

	dossier, err := s.candidatures.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load candidature", errx.TypeInternal)
	}

	if err := validatex.Validate(req).Err(application.ErrInvalidPayload()); err != nil {
		return nil, err
	}

	paths, err := s.uploader.Upload(ctx, attachmentDir(dossier.CIN()), files, attachmentExts)
	if err != nil {
		return nil, err
	}

	now := s.now()
	app := &application.Application{
		ID:                 kernel.NewApplicationID(uuid.NewString()),
		UserID:             userID,
		TrancheID:          t.ID,
		OfferID:            t.JobOfferID,
		SessionID:          t.SessionID,
		Status:             application.StatusPending,
		ApplicationDiploma: req.ApplicationDiploma,
		Attachment:         application.AttachmentFromPaths(paths),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.repo.Create(ctx, app); err != nil {
		s.uploader.Discard(ctx, paths)
		return nil, errx.Wrap(err, "failed to save application", errx.TypeInternal)
	}

	if err := s.tranches.RecordApplication(ctx, t.ID); err != nil {
		logx.Warn("tranche counter not incremented", "tranche_id", t.ID.String(), "error", err)
	}

	logx.Info("application submitted",
		"application_id", app.ID.String(),
		"tranche_id", t.ID.String(),
		"user_id", userID.String(),
	)
	return app, nil
}

func attachmentDir(cin string) string {
	if cin == "" {
		cin = "unknown"
	}
	return "uploads/candidats/" + cin + "/applications"
}

// ============================================================================
// Queries
// ============================================================================

func (s *ApplicationService) FindAll(ctx context.Context) ([]application.Application, error) {
	apps, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to retrieve applications", errx.TypeInternal)
	}
	return nonNil(apps), nil
}

func (s *ApplicationService) FindByUser(ctx context.Context, userID kernel.UserID) ([]application.Application, error) {
	apps, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to retrieve user applications", errx.TypeInternal)
	}
	return nonNil(apps), nil
}

func (s *ApplicationService) FindOne(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	if !kernel.IsValidID(id.String()) {
		return nil, application.ErrInvalidApplicationID().WithDetail("id", id.String())
	}
	return s.repo.GetByID(ctx, id)
}

// FindByTranche builds the candidate profiles of a tranche with two reads:
// the applications, then every dossier of their users at once.
func (s *ApplicationService) FindByTranche(ctx context.Context, trancheID kernel.TrancheID) ([]application.CandidateProfile, error) {
	if !kernel.IsValidID(trancheID.String()) {
		return nil, tranche.ErrInvalidTrancheID().WithDetail("tranche_id", trancheID.String())
	}

	apps, err := s.repo.ListByTranche(ctx, trancheID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to retrieve tranche applications", errx.TypeInternal)
	}
	if len(apps) == 0 {
		return []application.CandidateProfile{}, nil
	}

	userIDs := make([]kernel.UserID, 0, len(apps))
	seen := make(map[kernel.UserID]bool, len(apps))
	for _, a := range apps {
		if a.UserID.IsEmpty() || seen[a.UserID] {
			continue
		}
		seen[a.UserID] = true
		userIDs = append(userIDs, a.UserID)
	}

	dossiers, err := s.candidatures.ListByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, errx.Wrap(err, "failed to retrieve candidatures", errx.TypeInternal)
	}

	return application.BuildCandidateProfiles(apps, dossiers, s.now()), nil
}

// ============================================================================
// Administration
// ============================================================================

func (s *ApplicationService) Update(ctx context.Context, id kernel.ApplicationID, req application.UpdateApplicationRequest) (*application.Application, error) {
	app, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validatex.Validate(req).Err(application.ErrInvalidPayload()); err != nil {
		return nil, err
	}

	if req.ApplicationDiploma != nil {
		app.ApplicationDiploma = *req.ApplicationDiploma
	}
	app.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, app); err != nil {
		return nil, errx.Wrap(err, "failed to update application", errx.TypeInternal)
	}
	return app, nil
}

func (s *ApplicationService) Remove(ctx context.Context, id kernel.ApplicationID) error {
	if !kernel.IsValidID(id.String()) {
		return application.ErrInvalidApplicationID().WithDetail("id", id.String())
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errx.Wrap(err, "failed to delete application", errx.TypeInternal)
	}
	return nil
}

// AcceptApplication records the decision, then notifies the candidate.
// The decision stays stored when the candidate has no email or the mail
// cannot be sent; both cases are still reported to the caller.
func (s *ApplicationService) AcceptApplication(ctx context.Context, id kernel.ApplicationID, message string) (*application.Application, error) {
	app, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	dossier, err := s.candidatures.FindByUserID(ctx, app.UserID)
	if err != nil {
		if errors.Is(err, candidature.ErrCandidatureNotFound()) {
			return nil, application.ErrCandidatureNotFound().WithDetail("user_id", app.UserID.String())
		}
		return nil, errx.Wrap(err, "failed to load candidature", errx.TypeInternal)
	}

	app.Accept(s.now())
	if err := s.repo.Update(ctx, app); err != nil {
		return nil, errx.Wrap(err, "failed to update application", errx.TypeInternal)
	}

	recipient := dossier.Email()
	if recipient == "" {
		return nil, application.ErrCandidateEmailMissing().WithDetail("application_id", app.ID.String())
	}

	msg, err := mailx.AcceptanceEmail(recipient, mailx.AcceptanceData{
		FullName:     dossier.FullName(),
		OfferTitle:   s.offerTitle(ctx, app.OfferID),
		Message:      message,
		SupportEmail: s.supportEmail,
	})
	if err != nil {
		return nil, application.ErrNotificationFailed().WithCause(err)
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		logx.Error("acceptance email failed", "application_id", app.ID.String(), "error", err)
		return nil, application.ErrNotificationFailed().WithCause(err)
	}

	logx.Info("application accepted", "application_id", app.ID.String())
	return app, nil
}

func (s *ApplicationService) RejectApplication(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	app, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	app.Reject(s.now())
	if err := s.repo.Update(ctx, app); err != nil {
		return nil, errx.Wrap(err, "failed to update application", errx.TypeInternal)
	}

	logx.Info("application rejected", "application_id", app.ID.String())
	return app, nil
}

// offerTitle is best effort; a missing offer only drops the title from the email
func (s *ApplicationService) offerTitle(ctx context.Context, id kernel.JobOfferID) string {
	if s.offers == nil || id.IsEmpty() {
		return ""
	}
	offer, err := s.offers.GetJobOffer(ctx, id)
	if err != nil {
		logx.Debug("offer title unavailable", "offer_id", id.String(), "error", err)
		return ""
	}
	return offer.Title.In(kernel.LocaleEn)
}

func nonNil(apps []application.Application) []application.Application {
	if apps == nil {
		return []application.Application{}
	}
	return apps
}
