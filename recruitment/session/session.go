package session

import (
	"time"

	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
)

// Session is a recruitment cycle grouping tranches
type Session struct {
	ID        kernel.SessionID `json:"_id"`
	YearLabel string           `json:"yearLabel"`
	IsActive  bool             `json:"isActive"`
	StartDate time.Time        `json:"startDate"`
	EndDate   time.Time        `json:"endDate"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// Covers reports whether t falls inside the session dates
func (s *Session) Covers(t time.Time) bool {
	return !t.Before(s.StartDate) && !t.After(s.EndDate)
}
