package tranche

import (
	"time"

	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
)

// Tranche is an application window of a session for one job offer
type Tranche struct {
	ID                kernel.TrancheID  `json:"_id"`
	Name              string            `json:"name"`
	SessionID         kernel.SessionID  `json:"sessionId"`
	JobOfferID        kernel.JobOfferID `json:"jobOfferId"`
	StartDate         time.Time         `json:"startDate"`
	EndDate           time.Time         `json:"endDate"`
	IsOpen            bool              `json:"isOpen"`
	MaxCandidates     *int              `json:"maxCandidates,omitempty"`
	CurrentCandidates int               `json:"currentCandidates"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsActiveAt reports whether now lies within [StartDate, EndDate]
func (t *Tranche) IsActiveAt(now time.Time) bool {
	return !now.Before(t.StartDate) && !now.After(t.EndDate)
}

// IsConfigured reports whether the tranche references a session and a job offer
func (t *Tranche) IsConfigured() bool {
	return !t.SessionID.IsEmpty() && !t.JobOfferID.IsEmpty()
}

// IsFull reports whether the soft counter reached the optional cap.
// Admission does not consult it.
func (t *Tranche) IsFull() bool {
	return t.MaxCandidates != nil && t.CurrentCandidates >= *t.MaxCandidates
}

// CheckAdmission runs the checks an open tranche must pass before an
// application can reference it. assertedOffer may be empty.
func CheckAdmission(t *Tranche, now time.Time, assertedOffer kernel.JobOfferID) error {
	if !t.IsOpen {
		return ErrTrancheClosed()
	}
	if !t.IsActiveAt(now) {
		return ErrTrancheNotActive().
			WithDetail("start_date", t.StartDate).
			WithDetail("end_date", t.EndDate)
	}
	if !t.IsConfigured() {
		return ErrTrancheMisconfigured().WithDetail("tranche_id", t.ID.String())
	}
	if !assertedOffer.IsEmpty() && assertedOffer != t.JobOfferID {
		return ErrOfferMismatch().WithDetail("offer_id", assertedOffer.String())
	}
	return nil
}
