package joboffersrv

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"
	"testing"

	"github.com/0Omaaar/iRecruitApp/internal/testfixtures"
	"github.com/0Omaaar/iRecruitApp/pkg/errx"
	"github.com/0Omaaar/iRecruitApp/pkg/fsx"
	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
	"github.com/0Omaaar/iRecruitApp/recruitment/joboffer"
)

type stubRepo struct {
	offers    map[kernel.JobOfferID]joboffer.JobOffer
	lastQuery joboffer.AdminListQuery
	createErr error
	deleteErr error
}

func newStubRepo(offers ...joboffer.JobOffer) *stubRepo {
	r := &stubRepo{offers: make(map[kernel.JobOfferID]joboffer.JobOffer)}
	for _, o := range offers {
		r.offers[o.ID] = o
	}
	return r
}

func (r *stubRepo) Create(_ context.Context, o *joboffer.JobOffer) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.offers[o.ID] = *o
	return nil
}

func (r *stubRepo) Update(_ context.Context, o *joboffer.JobOffer) error {
	if _, ok := r.offers[o.ID]; !ok {
		return joboffer.ErrJobOfferNotFound()
	}
	r.offers[o.ID] = *o
	return nil
}

func (r *stubRepo) GetByID(_ context.Context, id kernel.JobOfferID) (*joboffer.JobOffer, error) {
	o, ok := r.offers[id]
	if !ok {
		return nil, joboffer.ErrJobOfferNotFound()
	}
	return &o, nil
}

func (r *stubRepo) Delete(_ context.Context, id kernel.JobOfferID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.offers[id]; !ok {
		return joboffer.ErrJobOfferNotFound()
	}
	delete(r.offers, id)
	return nil
}

func (r *stubRepo) ListAll(_ context.Context) ([]joboffer.JobOffer, error) {
	out := make([]joboffer.JobOffer, 0, len(r.offers))
	for _, o := range r.offers {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubRepo) Search(ctx context.Context, q joboffer.AdminListQuery) (*kernel.Paginated[joboffer.JobOffer], error) {
	r.lastQuery = q
	all, _ := r.ListAll(ctx)
	return &kernel.Paginated[joboffer.JobOffer]{
		Items: all,
		Page:  kernel.NewPage(q.Pagination(), len(all)),
	}, nil
}

func (r *stubRepo) Exists(_ context.Context, id kernel.JobOfferID) (bool, error) {
	_, ok := r.offers[id]
	return ok, nil
}

type stubApplied struct {
	ids map[kernel.UserID][]kernel.JobOfferID
	err error
}

func (s stubApplied) OfferIDsByUser(_ context.Context, userID kernel.UserID) ([]kernel.JobOfferID, error) {
	return s.ids[userID], s.err
}

func validCreate() joboffer.CreateJobOfferRequest {
	return joboffer.CreateJobOfferRequest{
		Title:            kernel.LocalizedText{Fr: "Professeur assistant", En: "Assistant professor", Ar: "أستاذ مساعد"},
		Description:      kernel.LocalizedText{Fr: "Enseignement"},
		Tag:              kernel.LocalizedText{Fr: "Enseignement supérieur"},
		City:             kernel.LocalizedText{Fr: "Rabat"},
		Department:       kernel.LocalizedText{Fr: "Informatique"},
		DatePublication:  "2025-03-01",
		DepotAvant:       "2025-04-01",
		CandidatesNumber: 5,
	}
}

func offer(n int) joboffer.JobOffer {
	return joboffer.JobOffer{ID: kernel.JobOfferID(testfixtures.UUID(n)), Title: kernel.LocalizedText{Fr: "Offre"}}
}

func newService(repo *stubRepo, applied joboffer.AppliedOffers) (*JobOfferService, *fsx.MemFileSystem) {
	fs := fsx.NewMemFileSystem()
	clock := testfixtures.NewClock(testfixtures.ReferenceTime())
	return NewJobOfferService(repo, applied, fsx.NewUploader(fs)).WithClock(clock.Now), fs
}

func TestCreateJobOffer(t *testing.T) {
	t.Parallel()

	owner := kernel.UserID(testfixtures.UUID(99))
	png := []fsx.UploadedFile{{Field: "image", Filename: "cover.PNG", Data: []byte("png")}}

	t.Run("owner is required", func(t *testing.T) {
		svc, _ := newService(newStubRepo(), stubApplied{})
		_, err := svc.CreateJobOffer(context.Background(), validCreate(), "", png)
		if !errors.Is(err, joboffer.ErrOwnerRequired()) {
			t.Fatalf("expected owner required, got %v", err)
		}
	})

	t.Run("image or imageUrl is required", func(t *testing.T) {
		svc, _ := newService(newStubRepo(), stubApplied{})
		_, err := svc.CreateJobOffer(context.Background(), validCreate(), owner, nil)
		if !errors.Is(err, joboffer.ErrImageRequired()) {
			t.Fatalf("expected image required, got %v", err)
		}
	})

	t.Run("imageUrl in payload is enough", func(t *testing.T) {
		repo := newStubRepo()
		svc, _ := newService(repo, stubApplied{})
		req := validCreate()
		req.ImageURL = "/uploads/job-offers/existing.png"
		created, err := svc.CreateJobOffer(context.Background(), req, owner, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.ImageURL != req.ImageURL || created.Owner != owner {
			t.Fatalf("unexpected offer %+v", created)
		}
		if !created.CreatedAt.Equal(testfixtures.ReferenceTime()) {
			t.Fatalf("expected clock time, got %v", created.CreatedAt)
		}
		if len(repo.offers) != 1 {
			t.Fatalf("expected offer to be persisted")
		}
	})

	t.Run("uploaded image wins and gets a public path", func(t *testing.T) {
		svc, fs := newService(newStubRepo(), stubApplied{})
		req := validCreate()
		req.ImageURL = "/ignored.png"
		created, err := svc.CreateJobOffer(context.Background(), req, owner, png)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(created.ImageURL, "/uploads/job-offers/image-") || !strings.HasSuffix(created.ImageURL, ".png") {
			t.Fatalf("unexpected image url %q", created.ImageURL)
		}
		if ok, _ := fs.Exists(context.Background(), strings.TrimPrefix(created.ImageURL, "/")); !ok {
			t.Fatal("expected the image to be stored")
		}
	})

	t.Run("image extension is checked", func(t *testing.T) {
		svc, _ := newService(newStubRepo(), stubApplied{})
		gif := []fsx.UploadedFile{{Field: "image", Filename: "cover.gif", Data: []byte("gif")}}
		_, err := svc.CreateJobOffer(context.Background(), validCreate(), owner, gif)
		if !errors.Is(err, fsx.ErrInvalidFileType()) {
			t.Fatalf("expected invalid file type, got %v", err)
		}
	})

	t.Run("payload is validated", func(t *testing.T) {
		svc, _ := newService(newStubRepo(), stubApplied{})
		req := validCreate()
		req.DatePublication = "01/03/2025"
		req.City = kernel.LocalizedText{}
		_, err := svc.CreateJobOffer(context.Background(), req, owner, png)
		xe, ok := errx.As(err)
		if !ok || xe.Code != joboffer.CodeInvalidPayload {
			t.Fatalf("expected invalid payload, got %v", err)
		}
		if _, ok := xe.Details["datePublication"]; !ok {
			t.Fatalf("expected datePublication violation, got %v", xe.Details)
		}
		if _, ok := xe.Details["city"]; !ok {
			t.Fatalf("expected city violation, got %v", xe.Details)
		}
	})
}

func TestListJobOffersExcludesAppliedOffers(t *testing.T) {
	t.Parallel()

	user := kernel.UserID(testfixtures.UUID(50))
	repo := newStubRepo(offer(1), offer(2), offer(3))
	applied := stubApplied{ids: map[kernel.UserID][]kernel.JobOfferID{
		user: {kernel.JobOfferID(testfixtures.UUID(2))},
	}}
	svc, _ := newService(repo, applied)

	all, err := svc.ListJobOffers(context.Background(), nil)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected 3 offers for anonymous callers, got %d (%v)", len(all), err)
	}

	mine, err := svc.ListJobOffers(context.Background(), &user)
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 offers, got %d", len(mine))
	}
	for _, o := range mine {
		if o.ID == kernel.JobOfferID(testfixtures.UUID(2)) {
			t.Fatal("expected applied offer to be hidden")
		}
	}

	failing, _ := newService(repo, stubApplied{err: errors.New("db down")})
	if _, err := failing.ListJobOffers(context.Background(), &user); !errx.IsType(err, errx.TypeInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestSearchJobOffersDefaults(t *testing.T) {
	t.Parallel()

	repo := newStubRepo(offer(1), offer(2), offer(3))
	svc, _ := newService(repo, stubApplied{})

	resp, err := svc.SearchJobOffers(context.Background(), joboffer.AdminListQuery{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if repo.lastQuery.Page != 1 || repo.lastQuery.Limit != 2 {
		t.Fatalf("expected page 1 limit 2, got %+v", repo.lastQuery)
	}
	if resp.Total != 3 || resp.TotalPages != 2 || resp.Page != 1 || resp.Limit != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}

	resp, _ = svc.SearchJobOffers(context.Background(), joboffer.AdminListQuery{Page: -3})
	if resp.Page != 1 || resp.Limit != 10 {
		t.Fatalf("expected defaults 1/10, got %d/%d", resp.Page, resp.Limit)
	}
}

func TestUpdateJobOffer(t *testing.T) {
	t.Parallel()

	existing := offer(1)
	existing.ImageURL = "/uploads/job-offers/old.png"
	existing.CandidatesNumber = 3
	repo := newStubRepo(existing)
	svc, _ := newService(repo, stubApplied{})

	city := kernel.LocalizedText{Fr: "Fès"}
	updated, err := svc.UpdateJobOffer(context.Background(), existing.ID, joboffer.UpdateJobOfferRequest{City: &city}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.City.Fr != "Fès" || updated.CandidatesNumber != 3 || updated.ImageURL != existing.ImageURL {
		t.Fatalf("expected partial update, got %+v", updated)
	}

	img := []fsx.UploadedFile{{Field: "image", Filename: "new.webp", Data: []byte("webp")}}
	updated, err = svc.UpdateJobOffer(context.Background(), existing.ID, joboffer.UpdateJobOfferRequest{}, img)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(updated.ImageURL, ".webp") {
		t.Fatalf("expected new image to replace imageUrl, got %q", updated.ImageURL)
	}

	negative := -1
	_, err = svc.UpdateJobOffer(context.Background(), existing.ID, joboffer.UpdateJobOfferRequest{CandidatesNumber: &negative}, nil)
	if !errors.Is(err, joboffer.ErrInvalidPayload()) {
		t.Fatalf("expected invalid payload, got %v", err)
	}

	_, err = svc.UpdateJobOffer(context.Background(), kernel.JobOfferID(testfixtures.UUID(404)), joboffer.UpdateJobOfferRequest{}, nil)
	if !errors.Is(err, joboffer.ErrJobOfferNotFound()) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteJobOffer(t *testing.T) {
	t.Parallel()

	repo := newStubRepo(offer(1))
	svc, _ := newService(repo, stubApplied{})

	deleted, err := svc.DeleteJobOffer(context.Background(), offer(1).ID)
	if err != nil || deleted.ID != offer(1).ID {
		t.Fatalf("expected deleted offer back, got %+v (%v)", deleted, err)
	}
	if _, err := svc.DeleteJobOffer(context.Background(), offer(1).ID); !errors.Is(err, joboffer.ErrJobOfferNotFound()) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
	if _, err := svc.GetJobOffer(context.Background(), "not-a-uuid"); !errors.Is(err, joboffer.ErrJobOfferNotFound()) {
		t.Fatalf("expected malformed id to be not found, got %v", err)
	}
}

func TestDeleteJobOfferKeepsTypedRepositoryError(t *testing.T) {
	t.Parallel()

	repo := newStubRepo(offer(1))
	repo.deleteErr = joboffer.ErrJobOfferInUse()
	svc, _ := newService(repo, stubApplied{})

	_, err := svc.DeleteJobOffer(context.Background(), offer(1).ID)
	xe, ok := errx.As(err)
	if !ok || xe.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected a 409 in-use error, got %v", err)
	}
}
