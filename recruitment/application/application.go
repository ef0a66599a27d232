package application

import (
	"time"

	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
)

// Attachment holds the stored paths of the documents sent with an application
type Attachment struct {
	DeclarationPdf      string `json:"declarationPdf"`
	MotivationLetterPdf string `json:"motivationLetterPdf"`
}

const (
	FieldDeclarationPdf      = "declarationPdf"
	FieldMotivationLetterPdf = "motivationLetterPdf"
)

// AttachmentFromPaths builds an Attachment from uploader output keyed by form field
func AttachmentFromPaths(paths map[string]string) Attachment {
	return Attachment{
		DeclarationPdf:      paths[FieldDeclarationPdf],
		MotivationLetterPdf: paths[FieldMotivationLetterPdf],
	}
}

// Application is a candidate's submission to one tranche.
// OfferID and SessionID are copied from the tranche at creation.
type Application struct {
	ID                 kernel.ApplicationID `json:"_id"`
	UserID             kernel.UserID        `json:"userId"`
	TrancheID          kernel.TrancheID     `json:"trancheId"`
	OfferID            kernel.JobOfferID    `json:"offerId"`
	SessionID          kernel.SessionID     `json:"sessionId"`
	Status             Status               `json:"status"`
	ApplicationDiploma string               `json:"applicationDiploma"`
	Attachment         Attachment           `json:"attachment"`
	RecuCandidature    *time.Time           `json:"recuCandidature,omitempty"`
	CreatedAt          time.Time            `json:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// Accept marks the application accepted and stamps the receipt time.
// Accepting twice re-stamps.
func (a *Application) Accept(now time.Time) {
	a.Status = StatusAccepted
	a.RecuCandidature = &now
	a.UpdatedAt = now
}

func (a *Application) Reject(now time.Time) {
	a.Status = StatusRejected
	a.UpdatedAt = now
}

func (a *Application) IsOwnedBy(userID kernel.UserID) bool {
	return a.UserID == userID
}

// AppliedAt is the receipt time, else the creation time, else fallback
func (a *Application) AppliedAt(fallback time.Time) time.Time {
	if a.RecuCandidature != nil && !a.RecuCandidature.IsZero() {
		return *a.RecuCandidature
	}
	if !a.CreatedAt.IsZero() {
		return a.CreatedAt
	}
	return fallback
}
