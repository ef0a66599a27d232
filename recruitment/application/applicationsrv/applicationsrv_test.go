package applicationsrv

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/0Omaaar/iRecruitApp/internal/testfixtures"
	"github.com/0Omaaar/iRecruitApp/pkg/errx"
	"github.com/0Omaaar/iRecruitApp/pkg/fsx"
	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
	"github.com/0Omaaar/iRecruitApp/pkg/mailx"
	"github.com/0Omaaar/iRecruitApp/recruitment/application"
	"github.com/0Omaaar/iRecruitApp/recruitment/candidature"
	"github.com/0Omaaar/iRecruitApp/recruitment/joboffer"
	"github.com/0Omaaar/iRecruitApp/recruitment/tranche"
	"github.com/0Omaaar/iRecruitApp/recruitment/tranche/tranchesrv"
)

// ============================================================================
// Stubs
// ============================================================================

type memApplications struct {
	apps    map[kernel.ApplicationID]application.Application
	updates []application.Application
	order   []kernel.ApplicationID

	createErr error
}

func newMemApplications() *memApplications {
	return &memApplications{apps: map[kernel.ApplicationID]application.Application{}}
}

func (r *memApplications) Create(_ context.Context, a *application.Application) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.apps[a.ID] = *a
	r.order = append(r.order, a.ID)
	return nil
}
func (r *memApplications) Update(_ context.Context, a *application.Application) error {
	if _, ok := r.apps[a.ID]; !ok {
		return application.ErrApplicationNotFound()
	}
	r.apps[a.ID] = *a
	r.updates = append(r.updates, *a)
	return nil
}
func (r *memApplications) GetByID(_ context.Context, id kernel.ApplicationID) (*application.Application, error) {
	a, ok := r.apps[id]
	if !ok {
		return nil, application.ErrApplicationNotFound()
	}
	return &a, nil
}
func (r *memApplications) Delete(_ context.Context, id kernel.ApplicationID) error {
	if _, ok := r.apps[id]; !ok {
		return application.ErrApplicationNotFound()
	}
	delete(r.apps, id)
	return nil
}
func (r *memApplications) ListAll(context.Context) ([]application.Application, error) {
	var out []application.Application
	for _, id := range r.order {
		if a, ok := r.apps[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}
func (r *memApplications) ListByUser(ctx context.Context, userID kernel.UserID) ([]application.Application, error) {
	all, _ := r.ListAll(ctx)
	var out []application.Application
	for _, a := range all {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}
func (r *memApplications) ListByTranche(ctx context.Context, trancheID kernel.TrancheID) ([]application.Application, error) {
	all, _ := r.ListAll(ctx)
	var out []application.Application
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].TrancheID == trancheID {
			out = append(out, all[i])
		}
	}
	return out, nil
}

type memCandidatures struct {
	byUser    map[kernel.UserID]candidature.Candidature
	bulkCalls int
}

func (r *memCandidatures) FindByUserID(_ context.Context, userID kernel.UserID) (*candidature.Candidature, error) {
	c, ok := r.byUser[userID]
	if !ok {
		return nil, candidature.ErrCandidatureNotFound()
	}
	return &c, nil
}
func (r *memCandidatures) ListByUserIDs(_ context.Context, ids []kernel.UserID) ([]candidature.Candidature, error) {
	r.bulkCalls++
	var out []candidature.Candidature
	for _, id := range ids {
		if c, ok := r.byUser[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

type memTranches struct {
	tranches map[kernel.TrancheID]*tranche.Tranche
}

func (r *memTranches) Create(_ context.Context, t *tranche.Tranche) error {
	r.tranches[t.ID] = t
	return nil
}
func (r *memTranches) GetByID(_ context.Context, id kernel.TrancheID) (*tranche.Tranche, error) {
	t, ok := r.tranches[id]
	if !ok {
		return nil, tranche.ErrTrancheNotFound()
	}
	cp := *t
	return &cp, nil
}
func (r *memTranches) ListByJobOffer(context.Context, kernel.JobOfferID) ([]tranche.Tranche, error) {
	return nil, nil
}
func (r *memTranches) SetOpen(_ context.Context, id kernel.TrancheID, open bool) error {
	r.tranches[id].IsOpen = open
	return nil
}
func (r *memTranches) IncrementCandidates(_ context.Context, id kernel.TrancheID) error {
	r.tranches[id].CurrentCandidates++
	return nil
}
func (r *memTranches) Exists(_ context.Context, id kernel.TrancheID) (bool, error) {
	_, ok := r.tranches[id]
	return ok, nil
}

type yes struct{}

func (yes) Exists(context.Context, kernel.SessionID) (bool, error) { return true, nil }

type yesOffer struct{}

func (yesOffer) Exists(context.Context, kernel.JobOfferID) (bool, error) { return true, nil }

type offers map[kernel.JobOfferID]joboffer.JobOffer

func (o offers) GetJobOffer(_ context.Context, id kernel.JobOfferID) (*joboffer.JobOffer, error) {
	offer, ok := o[id]
	if !ok {
		return nil, joboffer.ErrJobOfferNotFound()
	}
	return &offer, nil
}

type recordingMailer struct {
	sent []mailx.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg mailx.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

// ============================================================================
// Fixture
// ============================================================================

var (
	trancheID = kernel.TrancheID(testfixtures.UUID(10))
	sessionID = kernel.SessionID(testfixtures.UUID(11))
	offerID   = kernel.JobOfferID(testfixtures.UUID(12))
	userID    = kernel.UserID(testfixtures.UUID(13))
)

type fixture struct {
	svc          *ApplicationService
	apps         *memApplications
	candidatures *memCandidatures
	tranches     *memTranches
	mailer       *recordingMailer
	files        *fsx.MemFileSystem
	clock        *testfixtures.Clock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := testfixtures.NewClock(testfixtures.ReferenceTime())
	f := &fixture{
		apps: newMemApplications(),
		candidatures: &memCandidatures{byUser: map[kernel.UserID]candidature.Candidature{
			userID: {
				UserID: userID,
				PersonalInformation: candidature.PersonalInformation{
					Prenom: "Salma", Nom: "Alaoui", Email: "salma@example.com", CIN: "AB123",
				},
			},
		}},
		tranches: &memTranches{tranches: map[kernel.TrancheID]*tranche.Tranche{
			trancheID: {
				ID:         trancheID,
				SessionID:  sessionID,
				JobOfferID: offerID,
				StartDate:  clock.Now().Add(-24 * time.Hour),
				EndDate:    clock.Now().Add(24 * time.Hour),
				IsOpen:     true,
			},
		}},
		mailer: &recordingMailer{},
		files:  fsx.NewMemFileSystem(),
		clock:  clock,
	}

	gate := tranchesrv.NewTrancheService(f.tranches, yes{}, yesOffer{}).WithClock(clock.Now)
	catalog := offers{offerID: {ID: offerID, Title: kernel.LocalizedText{En: "Assistant Professor", Fr: "Professeur assistant"}}}
	f.svc = NewApplicationService(f.apps, f.candidatures, gate, catalog, fsx.NewUploader(f.files), f.mailer).
		WithClock(clock.Now)
	return f
}

func pdfs() []fsx.UploadedFile {
	return []fsx.UploadedFile{
		{Field: application.FieldDeclarationPdf, Filename: "declaration.pdf", Data: []byte("%PDF-1")},
		{Field: application.FieldMotivationLetterPdf, Filename: "lettre.PDF", Data: []byte("%PDF-2")},
	}
}

// ============================================================================
// Submission
// ============================================================================

func TestCreateApplicationDerivesOfferAndSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	req := application.CreateApplicationRequest{TrancheID: trancheID.String(), ApplicationDiploma: "Doctorat"}

	app, err := f.svc.CreateApplication(context.Background(), req, userID, pdfs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if app.OfferID != offerID || app.SessionID != sessionID || app.TrancheID != trancheID {
		t.Fatalf("expected references from the tranche, got %+v", app)
	}
	if app.Status != application.StatusPending {
		t.Fatalf("expected pending, got %s", app.Status)
	}
	if !strings.HasPrefix(app.Attachment.DeclarationPdf, "uploads/candidats/AB123/applications/") ||
		!strings.HasSuffix(app.Attachment.MotivationLetterPdf, ".pdf") {
		t.Fatalf("unexpected attachment paths %+v", app.Attachment)
	}
	if len(f.files.Paths()) != 2 {
		t.Fatalf("expected two stored files, got %v", f.files.Paths())
	}
	if got := f.tranches.tranches[trancheID].CurrentCandidates; got != 1 {
		t.Fatalf("expected counter 1, got %d", got)
	}
	if _, ok := f.apps.apps[app.ID]; !ok {
		t.Fatal("expected application to be persisted")
	}
}

func TestCreateApplicationRemovesAttachmentsWhenSaveFails(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.apps.createErr = errors.New("connection refused")
	req := application.CreateApplicationRequest{TrancheID: trancheID.String(), ApplicationDiploma: "Doctorat"}

	_, err := f.svc.CreateApplication(context.Background(), req, userID, pdfs())
	if err == nil {
		t.Fatal("expected save failure")
	}
	if len(f.files.Paths()) != 0 {
		t.Fatalf("expected attachments to be removed, got %v", f.files.Paths())
	}
	if got := f.tranches.tranches[trancheID].CurrentCandidates; got != 0 {
		t.Fatalf("expected counter untouched, got %d", got)
	}
}

func TestCreateApplicationAdmissionFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(*fixture)
		req     application.CreateApplicationRequest
		files   []fsx.UploadedFile
		wantErr error
		status  int
	}{
		{
			name:    "missing tranche id",
			req:     application.CreateApplicationRequest{},
			wantErr: tranche.ErrTrancheIDRequired(),
			status:  400,
		},
		{
			name:    "unknown tranche",
			req:     application.CreateApplicationRequest{TrancheID: testfixtures.UUID(99)},
			wantErr: tranche.ErrTrancheNotFound(),
			status:  404,
		},
		{
			name:    "closed tranche",
			setup:   func(f *fixture) { f.tranches.tranches[trancheID].IsOpen = false },
			req:     application.CreateApplicationRequest{TrancheID: trancheID.String()},
			wantErr: tranche.ErrTrancheClosed(),
			status:  400,
		},
		{
			name:    "window elapsed",
			setup:   func(f *fixture) { f.clock.Advance(48 * time.Hour) },
			req:     application.CreateApplicationRequest{TrancheID: trancheID.String()},
			wantErr: tranche.ErrTrancheNotActive(),
			status:  400,
		},
		{
			name:    "tranche without session",
			setup:   func(f *fixture) { f.tranches.tranches[trancheID].SessionID = "" },
			req:     application.CreateApplicationRequest{TrancheID: trancheID.String()},
			wantErr: tranche.ErrTrancheMisconfigured(),
			status:  400,
		},
		{
			name:    "conflicting offer",
			req:     application.CreateApplicationRequest{TrancheID: trancheID.String(), OfferID: testfixtures.UUID(77)},
			wantErr: tranche.ErrOfferMismatch(),
			status:  400,
		},
		{
			name:    "no candidature",
			setup:   func(f *fixture) { delete(f.candidatures.byUser, userID) },
			req:     application.CreateApplicationRequest{TrancheID: trancheID.String()},
			wantErr: candidature.ErrCandidatureNotFound(),
			status:  404,
		},
		{
			name:    "non pdf attachment",
			req:     application.CreateApplicationRequest{TrancheID: trancheID.String()},
			files:   []fsx.UploadedFile{{Field: application.FieldDeclarationPdf, Filename: "scan.png", Data: []byte("x")}},
			wantErr: fsx.ErrInvalidFileType(),
			status:  400,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			_, err := f.svc.CreateApplication(context.Background(), tt.req, userID, tt.files)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if xe, _ := errx.As(err); xe.HTTPStatus != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, xe.HTTPStatus)
			}
			if len(f.apps.apps) != 0 || len(f.files.Paths()) != 0 {
				t.Fatal("expected nothing stored on failure")
			}
			if f.tranches.tranches[trancheID].CurrentCandidates != 0 {
				t.Fatal("expected counter untouched")
			}
		})
	}
}

func TestCreateApplicationWithMatchingOffer(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	req := application.CreateApplicationRequest{TrancheID: trancheID.String(), OfferID: offerID.String()}
	if _, err := f.svc.CreateApplication(context.Background(), req, userID, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// ============================================================================
// Decisions
// ============================================================================

func seedApplication(f *fixture, owner kernel.UserID) application.Application {
	a := application.Application{
		ID:        kernel.ApplicationID(testfixtures.UUID(50)),
		UserID:    owner,
		TrancheID: trancheID,
		OfferID:   offerID,
		SessionID: sessionID,
		Status:    application.StatusPending,
		CreatedAt: testfixtures.ReferenceTime().Add(-time.Hour),
	}
	f.apps.apps[a.ID] = a
	f.apps.order = append(f.apps.order, a.ID)
	return a
}

func TestAcceptApplicationSendsEmail(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	seeded := seedApplication(f, userID)

	app, err := f.svc.AcceptApplication(context.Background(), seeded.ID, "Interview on <b>Monday</b>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.Status != application.StatusAccepted || app.RecuCandidature == nil ||
		!app.RecuCandidature.Equal(testfixtures.ReferenceTime()) {
		t.Fatalf("unexpected application %+v", app)
	}
	if len(f.mailer.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(f.mailer.sent))
	}
	msg := f.mailer.sent[0]
	if msg.To != "salma@example.com" || msg.Subject != mailx.AcceptanceSubject {
		t.Fatalf("unexpected message %+v", msg)
	}
	if !strings.Contains(msg.HTML, "Assistant Professor") || !strings.Contains(msg.HTML, "&lt;b&gt;Monday&lt;/b&gt;") {
		t.Fatalf("expected offer title and escaped message in body")
	}
}

func TestAcceptApplicationWithoutEmailKeepsDecision(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	seeded := seedApplication(f, userID)
	dossier := f.candidatures.byUser[userID]
	dossier.PersonalInformation.Email = ""
	f.candidatures.byUser[userID] = dossier

	app, err := f.svc.AcceptApplication(context.Background(), seeded.ID, "")
	if !errors.Is(err, application.ErrCandidateEmailMissing()) {
		t.Fatalf("expected missing email error, got %v", err)
	}
	if xe, _ := errx.As(err); xe.HTTPStatus != 404 {
		t.Fatalf("expected 404, got %d", xe.HTTPStatus)
	}
	if app != nil {
		t.Fatal("expected no application returned")
	}
	if len(f.apps.updates) != 1 || f.apps.updates[0].Status != application.StatusAccepted {
		t.Fatalf("expected the accepted write to be stored, got %+v", f.apps.updates)
	}
	if len(f.mailer.sent) != 0 {
		t.Fatal("expected no email")
	}
}

func TestAcceptApplicationMailFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	seeded := seedApplication(f, userID)
	f.mailer.err = errors.New("smtp: connection refused")

	_, err := f.svc.AcceptApplication(context.Background(), seeded.ID, "hi")
	if !errors.Is(err, application.ErrNotificationFailed()) {
		t.Fatalf("expected notification failure, got %v", err)
	}
	if xe, _ := errx.As(err); xe.HTTPStatus != 500 || xe.Message != "Failed to send notification email" {
		t.Fatalf("unexpected error %+v", xe)
	}
	if f.apps.apps[seeded.ID].Status != application.StatusAccepted {
		t.Fatal("expected the decision to stay stored")
	}
}

func TestAcceptApplicationLookupFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		id      kernel.ApplicationID
		seed    bool
		owner   kernel.UserID
		wantErr error
	}{
		{name: "malformed id", id: "abc", wantErr: application.ErrInvalidApplicationID()},
		{name: "unknown application", id: kernel.ApplicationID(testfixtures.UUID(51)), wantErr: application.ErrApplicationNotFound()},
		{
			name:    "owner without candidature",
			id:      kernel.ApplicationID(testfixtures.UUID(50)),
			seed:    true,
			owner:   kernel.UserID(testfixtures.UUID(60)),
			wantErr: application.ErrCandidatureNotFound(),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)
			if tt.seed {
				seedApplication(f, tt.owner)
			}
			_, err := f.svc.AcceptApplication(context.Background(), tt.id, "")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if len(f.apps.updates) != 0 {
				t.Fatal("expected no write")
			}
		})
	}
}

func TestAcceptTwiceRestampsAndResends(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	seeded := seedApplication(f, userID)

	if _, err := f.svc.AcceptApplication(context.Background(), seeded.ID, ""); err != nil {
		t.Fatal(err)
	}
	f.clock.Advance(time.Hour)
	app, err := f.svc.AcceptApplication(context.Background(), seeded.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	if !app.RecuCandidature.Equal(testfixtures.ReferenceTime().Add(time.Hour)) || len(f.mailer.sent) != 2 {
		t.Fatalf("expected a second stamp and email, got %v / %d", app.RecuCandidature, len(f.mailer.sent))
	}
}

func TestRejectApplication(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	seeded := seedApplication(f, userID)

	app, err := f.svc.RejectApplication(context.Background(), seeded.ID)
	if err != nil {
		t.Fatal(err)
	}
	if app.Status != application.StatusRejected || app.RecuCandidature != nil {
		t.Fatalf("unexpected application %+v", app)
	}
	if len(f.mailer.sent) != 0 {
		t.Fatal("reject must not send email")
	}

	if _, err := f.svc.RejectApplication(context.Background(), "nope"); !errors.Is(err, application.ErrInvalidApplicationID()) {
		t.Fatalf("expected invalid id, got %v", err)
	}
}

// ============================================================================
// Queries and administration
// ============================================================================

func TestFindByTranche(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	if _, err := f.svc.FindByTranche(context.Background(), "bad"); !errors.Is(err, tranche.ErrInvalidTrancheID()) {
		t.Fatalf("expected invalid tranche id, got %v", err)
	}

	empty, err := f.svc.FindByTranche(context.Background(), trancheID)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty list, got %v (%v)", empty, err)
	}
	if f.candidatures.bulkCalls != 0 {
		t.Fatal("expected no dossier query for an empty tranche")
	}

	first, err := f.svc.CreateApplication(context.Background(),
		application.CreateApplicationRequest{TrancheID: trancheID.String()}, userID, nil)
	if err != nil {
		t.Fatal(err)
	}
	f.clock.Advance(time.Minute)
	second, err := f.svc.CreateApplication(context.Background(),
		application.CreateApplicationRequest{TrancheID: trancheID.String()}, kernel.UserID(testfixtures.UUID(14)), nil)
	if err == nil {
		t.Fatalf("expected second user without dossier to be refused, got %+v", second)
	}

	profiles, err := f.svc.FindByTranche(context.Background(), trancheID)
	if err != nil {
		t.Fatal(err)
	}
	if len(profiles) != 1 || profiles[0].ID != first.ID.String() {
		t.Fatalf("unexpected profiles %+v", profiles)
	}
	if profiles[0].PersonalInformation.Email != "salma@example.com" || profiles[0].Status != application.StatusPending {
		t.Fatalf("unexpected profile %+v", profiles[0])
	}
	if f.candidatures.bulkCalls != 1 {
		t.Fatalf("expected one bulk dossier query, got %d", f.candidatures.bulkCalls)
	}
}

func TestUpdateAndRemove(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	seeded := seedApplication(f, userID)

	diploma := "Master en informatique"
	app, err := f.svc.Update(context.Background(), seeded.ID, application.UpdateApplicationRequest{ApplicationDiploma: &diploma})
	if err != nil {
		t.Fatal(err)
	}
	if app.ApplicationDiploma != diploma || app.Status != application.StatusPending {
		t.Fatalf("unexpected update %+v", app)
	}

	if err := f.svc.Remove(context.Background(), seeded.ID); err != nil {
		t.Fatal(err)
	}
	if err := f.svc.Remove(context.Background(), seeded.ID); !errors.Is(err, application.ErrApplicationNotFound()) {
		t.Fatalf("expected not found, got %v", err)
	}
	mine, err := f.svc.FindByUser(context.Background(), userID)
	if err != nil || mine == nil || len(mine) != 0 {
		t.Fatalf("expected no applications left, got %v (%v)", mine, err)
	}
}
