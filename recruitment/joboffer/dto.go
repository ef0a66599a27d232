package joboffer

import "github.com/0Omaaar/iRecruitApp/pkg/kernel"

type CreateJobOfferRequest struct {
	Title            kernel.LocalizedText  `json:"title" validate:"required"`
	Description      kernel.LocalizedText  `json:"description" validate:"required"`
	Tag              kernel.LocalizedText  `json:"tag" validate:"required"`
	City             kernel.LocalizedText  `json:"city" validate:"required"`
	Department       kernel.LocalizedText  `json:"department" validate:"required"`
	Grade            *kernel.LocalizedText `json:"grade,omitempty"`
	Organisme        *kernel.LocalizedText `json:"organisme,omitempty"`
	Specialite       *kernel.LocalizedText `json:"specialite,omitempty"`
	Etablissement    *kernel.LocalizedText `json:"etablissement,omitempty"`
	ImageURL         string                `json:"imageUrl,omitempty"`
	DatePublication  string                `json:"datePublication" validate:"required,isodate"`
	DepotAvant       string                `json:"depotAvant" validate:"required,isodate"`
	CandidatesNumber int                   `json:"candidatesNumber" validate:"min=0"`
}

// UpdateJobOfferRequest is a partial update; nil fields are left untouched
type UpdateJobOfferRequest struct {
	Title            *kernel.LocalizedText `json:"title,omitempty"`
	Description      *kernel.LocalizedText `json:"description,omitempty"`
	Tag              *kernel.LocalizedText `json:"tag,omitempty"`
	City             *kernel.LocalizedText `json:"city,omitempty"`
	Department       *kernel.LocalizedText `json:"department,omitempty"`
	Grade            *kernel.LocalizedText `json:"grade,omitempty"`
	Organisme        *kernel.LocalizedText `json:"organisme,omitempty"`
	Specialite       *kernel.LocalizedText `json:"specialite,omitempty"`
	Etablissement    *kernel.LocalizedText `json:"etablissement,omitempty"`
	ImageURL         *string               `json:"imageUrl,omitempty"`
	DatePublication  *string               `json:"datePublication,omitempty" validate:"omitnil,isodate"`
	DepotAvant       *string               `json:"depotAvant,omitempty" validate:"omitnil,isodate"`
	CandidatesNumber *int                  `json:"candidatesNumber,omitempty" validate:"omitnil,min=0"`
}

// AdminListQuery filters the back-office listing.
// Text filters match any locale case-insensitively; Date matches datePublication exactly.
type AdminListQuery struct {
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
	Title      string `query:"title"`
	Date       string `query:"date"`
	City       string `query:"city"`
	Department string `query:"department"`
}

const (
	DefaultAdminPage  = 1
	DefaultAdminLimit = 10
)

// Normalize applies the listing defaults
func (q AdminListQuery) Normalize() AdminListQuery {
	if q.Page < 1 {
		q.Page = DefaultAdminPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultAdminLimit
	}
	return q
}

func (q AdminListQuery) Pagination() kernel.PaginationOptions {
	return kernel.PaginationOptions{Page: q.Page, PageSize: q.Limit}
}

type AdminListResponse struct {
	Data       []JobOffer `json:"data"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"totalPages"`
}
