package tranche

import (
	"context"

	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
)

type Repository interface {
	Create(ctx context.Context, t *Tranche) error
	GetByID(ctx context.Context, id kernel.TrancheID) (*Tranche, error)
	ListByJobOffer(ctx context.Context, offerID kernel.JobOfferID) ([]Tranche, error)
	SetOpen(ctx context.Context, id kernel.TrancheID, open bool) error

	// IncrementCandidates bumps the soft counter by one
	IncrementCandidates(ctx context.Context, id kernel.TrancheID) error

	Exists(ctx context.Context, id kernel.TrancheID) (bool, error)
}

// SessionChecker and OfferChecker guard the references of a new tranche
type SessionChecker interface {
	Exists(ctx context.Context, id kernel.SessionID) (bool, error)
}

type OfferChecker interface {
	Exists(ctx context.Context, id kernel.JobOfferID) (bool, error)
}
