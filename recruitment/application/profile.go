package application

import (
	"time"

	"github.com/0Omaaar/iRecruitApp/recruitment/candidature"
)

// CandidateProfile is the read model the admin back-office renders per applicant
type CandidateProfile struct {
	ID                      string                              `json:"_id"`
	Status                  Status                              `json:"status"`
	AppliedDate             string                              `json:"appliedDate"`
	ApplicationDiploma      string                              `json:"applicationDiploma"`
	ApplicationAttachments  Attachment                          `json:"applicationAttachments"`
	PersonalInformation     candidature.PersonalInformation     `json:"personalInformation"`
	ProfessionalInformation candidature.ProfessionalInformation `json:"professionalInformation"`
}

// AppliedDateLayout is the ISO-8601 form with milliseconds browsers produce
const AppliedDateLayout = "2006-01-02T15:04:05.000Z07:00"

// BuildCandidateProfile joins an application with its owner's dossier.
// c may be nil. Neither input is modified.
func BuildCandidateProfile(app Application, c *candidature.Candidature, now time.Time) CandidateProfile {
	status := app.Status
	if !status.IsValid() {
		status = StatusPending
	}

	p := CandidateProfile{
		ID:                     app.ID.String(),
		Status:                 status,
		AppliedDate:            app.AppliedAt(now).UTC().Format(AppliedDateLayout),
		ApplicationDiploma:     app.ApplicationDiploma,
		ApplicationAttachments: app.Attachment,
	}
	if c != nil {
		p.PersonalInformation = c.PersonalInformation
		p.ProfessionalInformation = c.ProfessionalInformation
	}
	p.ProfessionalInformation = withEmptyLists(p.ProfessionalInformation)
	return p
}

// BuildCandidateProfiles projects apps in order, matching dossiers by user id
func BuildCandidateProfiles(apps []Application, dossiers []candidature.Candidature, now time.Time) []CandidateProfile {
	byUser := make(map[string]*candidature.Candidature, len(dossiers))
	for i := range dossiers {
		byUser[dossiers[i].UserID.String()] = &dossiers[i]
	}

	out := make([]CandidateProfile, 0, len(apps))
	for _, app := range apps {
		out = append(out, BuildCandidateProfile(app, byUser[app.UserID.String()], now))
	}
	return out
}

func withEmptyLists(p candidature.ProfessionalInformation) candidature.ProfessionalInformation {
	if p.ParcoursEtDiplomes == nil {
		p.ParcoursEtDiplomes = []candidature.Diploma{}
	}
	if p.NiveauxLangues == nil {
		p.NiveauxLangues = []candidature.LanguageLevel{}
	}
	if p.Experiences == nil {
		p.Experiences = []candidature.WorkExperience{}
	}
	if p.ExperiencePedagogique == nil {
		p.ExperiencePedagogique = candidature.OneOrMany[candidature.TeachingExperience]{}
	}
	if p.Publications == nil {
		p.Publications = []candidature.Publication{}
	}
	if p.Communications == nil {
		p.Communications = []candidature.Communication{}
	}
	if p.Residanat == nil {
		p.Residanat = candidature.OneOrMany[candidature.Residanat]{}
	}
	if p.AutresDocuments == nil {
		p.AutresDocuments = []candidature.OtherDocument{}
	}
	return p
}
