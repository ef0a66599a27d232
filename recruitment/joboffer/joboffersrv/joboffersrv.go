package joboffersrv

import (
	"context"
	"time"

	"github.com/0Omaaar/iRecruitApp/pkg/errx"
	"github.com/0Omaaar/iRecruitApp/pkg/fsx"
	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
	"github.com/0Omaaar/iRecruitApp/pkg/validatex"
	"github.com/0Omaaar/iRecruitApp/recruitment/joboffer"
	"github.com/google/uuid"
)

const imageDir = "uploads/job-offers"

var imageExts = []string{"png", "jpg", "jpeg", "webp"}

// JobOfferService provides business operations for job offers
type JobOfferService struct {
	repo     joboffer.Repository
	applied  joboffer.AppliedOffers
	uploader *fsx.Uploader
	now      func() time.Time
}

func NewJobOfferService(
	repo joboffer.Repository,
	applied joboffer.AppliedOffers,
	uploader *fsx.Uploader,
) *JobOfferService {
	return &JobOfferService{
		repo:     repo,
		applied:  applied,
		uploader: uploader,
		now:      time.Now,
	}
}

// WithClock overrides the time source, for tests
func (s *JobOfferService) WithClock(now func() time.Time) *JobOfferService {
	s.now = now
	return s
}

// resolveImageURL stores the first image, if any, and returns its public path
func (s *JobOfferService) resolveImageURL(ctx context.Context, images []fsx.UploadedFile) (string, error) {
	if len(images) == 0 {
		return "", nil
	}
	first := images[0]
	paths, err := s.uploader.Upload(ctx, imageDir, []fsx.UploadedFile{first}, imageExts)
	if err != nil {
		return "", err
	}
	return fsx.PublicPath(paths[first.Field]), nil
}

// CreateJobOffer creates an offer owned by the calling recruiter
func (s *JobOfferService) CreateJobOffer(ctx context.Context, req joboffer.CreateJobOfferRequest, owner kernel.UserID, images []fsx.UploadedFile) (*joboffer.JobOffer, error) {
	if owner.IsEmpty() {
		return nil, joboffer.ErrOwnerRequired()
	}
	if err := validatex.Validate(req).Err(joboffer.ErrInvalidPayload()); err != nil {
		return nil, err
	}

	imageURL, err := s.resolveImageURL(ctx, images)
	if err != nil {
		return nil, err
	}
	if imageURL == "" && req.ImageURL == "" {
		return nil, joboffer.ErrImageRequired()
	}
	if imageURL == "" {
		imageURL = req.ImageURL
	}

	now := s.now()
	offer := &joboffer.JobOffer{
		ID:               kernel.NewJobOfferID(uuid.NewString()),
		Title:            req.Title,
		Description:      req.Description,
		Tag:              req.Tag,
		City:             req.City,
		Department:       req.Department,
		Grade:            req.Grade,
		Organisme:        req.Organisme,
		Specialite:       req.Specialite,
		Etablissement:    req.Etablissement,
		ImageURL:         imageURL,
		DatePublication:  req.DatePublication,
		DepotAvant:       req.DepotAvant,
		CandidatesNumber: req.CandidatesNumber,
		Owner:            owner,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, offer); err != nil {
		return nil, errx.Wrap(err, "failed to create job offer", errx.TypeInternal)
	}
	return offer, nil
}

// ListJobOffers returns every offer; for an identified caller the offers
// they already applied to are left out.
func (s *JobOfferService) ListJobOffers(ctx context.Context, caller *kernel.UserID) ([]joboffer.JobOffer, error) {
	offers, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list job offers", errx.TypeInternal)
	}
	if caller == nil || caller.IsEmpty() {
		return offers, nil
	}

	appliedIDs, err := s.applied.OfferIDsByUser(ctx, *caller)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load user applications", errx.TypeInternal)
	}
	if len(appliedIDs) == 0 {
		return offers, nil
	}

	skip := make(map[kernel.JobOfferID]struct{}, len(appliedIDs))
	for _, id := range appliedIDs {
		skip[id] = struct{}{}
	}
	filtered := make([]joboffer.JobOffer, 0, len(offers))
	for _, o := range offers {
		if _, applied := skip[o.ID]; !applied {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}

// SearchJobOffers serves the back-office listing
func (s *JobOfferService) SearchJobOffers(ctx context.Context, q joboffer.AdminListQuery) (*joboffer.AdminListResponse, error) {
	q = q.Normalize()

	page, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, errx.Wrap(err, "failed to search job offers", errx.TypeInternal)
	}

	data := page.Items
	if data == nil {
		data = []joboffer.JobOffer{}
	}
	return &joboffer.AdminListResponse{
		Data:       data,
		Total:      page.Page.Total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: page.Page.Pages,
	}, nil
}

func (s *JobOfferService) GetJobOffer(ctx context.Context, id kernel.JobOfferID) (*joboffer.JobOffer, error) {
	if !kernel.IsValidID(id.String()) {
		return nil, joboffer.ErrJobOfferNotFound().WithDetail("id", id.String())
	}
	return s.repo.GetByID(ctx, id)
}

// UpdateJobOffer applies a partial update; a new image replaces imageUrl
func (s *JobOfferService) UpdateJobOffer(ctx context.Context, id kernel.JobOfferID, req joboffer.UpdateJobOfferRequest, images []fsx.UploadedFile) (*joboffer.JobOffer, error) {
	offer, err := s.GetJobOffer(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validatex.Validate(req).Err(joboffer.ErrInvalidPayload()); err != nil {
		return nil, err
	}

	imageURL, err := s.resolveImageURL(ctx, images)
	if err != nil {
		return nil, err
	}
	if imageURL != "" {
		req.ImageURL = &imageURL
	}

	offer.ApplyUpdate(req, s.now())
	if err := s.repo.Update(ctx, offer); err != nil {
		return nil, errx.Wrap(err, "failed to update job offer", errx.TypeInternal)
	}
	return offer, nil
}

// DeleteJobOffer removes an offer and returns what was deleted
func (s *JobOfferService) DeleteJobOffer(ctx context.Context, id kernel.JobOfferID) (*joboffer.JobOffer, error) {
	offer, err := s.GetJobOffer(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, errx.Wrap(err, "failed to delete job offer", errx.TypeInternal)
	}
	return offer, nil
}

func (s *JobOfferService) Exists(ctx context.Context, id kernel.JobOfferID) (bool, error) {
	if !kernel.IsValidID(id.String()) {
		return false, nil
	}
	return s.repo.Exists(ctx, id)
}
