package tranche

type CreateTrancheRequest struct {
	Name          string `json:"name" validate:"required,max=128"`
	SessionID     string `json:"sessionId" validate:"required,uuid"`
	JobOfferID    string `json:"jobOfferId" validate:"required,uuid"`
	StartDate     string `json:"startDate" validate:"required,isodate"`
	EndDate       string `json:"endDate" validate:"required,isodate"`
	IsOpen        bool   `json:"isOpen"`
	MaxCandidates *int   `json:"maxCandidates,omitempty" validate:"omitnil,min=0"`
}
