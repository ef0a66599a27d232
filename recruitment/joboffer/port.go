package joboffer

import (
	"context"

	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
)

type Repository interface {
	Create(ctx context.Context, offer *JobOffer) error

	// Update fails with not-found when the offer is gone
	Update(ctx context.Context, offer *JobOffer) error

	GetByID(ctx context.Context, id kernel.JobOfferID) (*JobOffer, error)

	Delete(ctx context.Context, id kernel.JobOfferID) error

	// ListAll returns every offer, newest first
	ListAll(ctx context.Context) ([]JobOffer, error)

	// Search applies the admin filters and pagination
	Search(ctx context.Context, q AdminListQuery) (*kernel.Paginated[JobOffer], error)

	Exists(ctx context.Context, id kernel.JobOfferID) (bool, error)
}

// AppliedOffers lists the offers a user already applied to
type AppliedOffers interface {
	OfferIDsByUser(ctx context.Context, userID kernel.UserID) ([]kernel.JobOfferID, error)
}
