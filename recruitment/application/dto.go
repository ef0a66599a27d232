package application

import "github.com/0Omaaar/iRecruitApp/pkg/kernel"

// CreateApplicationRequest is the non-file part of a submission.
// OfferID is optional; when set it must match the tranche's job offer.
type CreateApplicationRequest struct {
	TrancheID          string `json:"trancheId" form:"trancheId"`
	OfferID            string `json:"offerId,omitempty" form:"offerId"`
	ApplicationDiploma string `json:"applicationDiploma" form:"applicationDiploma" validate:"max=256"`
}

type UpdateApplicationRequest struct {
	ApplicationDiploma *string `json:"applicationDiploma,omitempty" validate:"omitnil,max=256"`
}

type AcceptApplicationRequest struct {
	Message string `json:"message" validate:"max=5000"`
}

// ApplicationResponse adds the localized status label to an application
type ApplicationResponse struct {
	Application
	Statut kernel.LocalizedText `json:"statut"`
}

func NewApplicationResponse(a Application) ApplicationResponse {
	return ApplicationResponse{Application: a, Statut: a.Status.Label()}
}

func NewApplicationResponses(apps []Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, NewApplicationResponse(a))
	}
	return out
}
