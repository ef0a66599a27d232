package session

type CreateSessionRequest struct {
	YearLabel string `json:"yearLabel" validate:"required,max=64"`
	IsActive  bool   `json:"isActive"`
	StartDate string `json:"startDate" validate:"required,isodate"`
	EndDate   string `json:"endDate" validate:"required,isodate"`
}
