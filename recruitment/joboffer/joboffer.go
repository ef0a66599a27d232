package joboffer

import (
	"time"

	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
)

// JobOffer is a multilingual position published on the board
type JobOffer struct {
	ID               kernel.JobOfferID     `json:"_id"`
	Title            kernel.LocalizedText  `json:"title"`
	Description      kernel.LocalizedText  `json:"description"`
	Tag              kernel.LocalizedText  `json:"tag"`
	City             kernel.LocalizedText  `json:"city"`
	Department       kernel.LocalizedText  `json:"department"`
	Grade            *kernel.LocalizedText `json:"grade,omitempty"`
	Organisme        *kernel.LocalizedText `json:"organisme,omitempty"`
	Specialite       *kernel.LocalizedText `json:"specialite,omitempty"`
	Etablissement    *kernel.LocalizedText `json:"etablissement,omitempty"`
	ImageURL         string                `json:"imageUrl"`
	DatePublication  string                `json:"datePublication"`
	DepotAvant       string                `json:"depotAvant"`
	CandidatesNumber int                   `json:"candidatesNumber"`
	Owner            kernel.UserID         `json:"owner"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// ApplyUpdate copies every field set in req onto the offer
func (o *JobOffer) ApplyUpdate(req UpdateJobOfferRequest, now time.Time) {
	if req.Title != nil {
		o.Title = *req.Title
	}
	if req.Description != nil {
		o.Description = *req.Description
	}
	if req.Tag != nil {
		o.Tag = *req.Tag
	}
	if req.City != nil {
		o.City = *req.City
	}
	if req.Department != nil {
		o.Department = *req.Department
	}
	if req.Grade != nil {
		o.Grade = req.Grade
	}
	if req.Organisme != nil {
		o.Organisme = req.Organisme
	}
	if req.Specialite != nil {
		o.Specialite = req.Specialite
	}
	if req.Etablissement != nil {
		o.Etablissement = req.Etablissement
	}
	if req.ImageURL != nil {
		o.ImageURL = *req.ImageURL
	}
	if req.DatePublication != nil {
		o.DatePublication = *req.DatePublication
	}
	if req.DepotAvant != nil {
		o.DepotAvant = *req.DepotAvant
	}
	if req.CandidatesNumber != nil {
		o.CandidatesNumber = *req.CandidatesNumber
	}
	o.UpdatedAt = now
}

func (o *JobOffer) IsOwnedBy(userID kernel.UserID) bool {
	return o.Owner == userID
}
