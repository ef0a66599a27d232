package application

import (
	"context"

	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
	"github.com/0Omaaar/iRecruitApp/recruitment/joboffer"
	"github.com/0Omaaar/iRecruitApp/recruitment/tranche"
)

type Repository interface {
	Create(ctx context.Context, a *Application) error
	Update(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id kernel.ApplicationID) (*Application, error)
	Delete(ctx context.Context, id kernel.ApplicationID) error

	ListAll(ctx context.Context) ([]Application, error)
	ListByUser(ctx context.Context, userID kernel.UserID) ([]Application, error)

	// ListByTranche returns the tranche's applications, newest first
	ListByTranche(ctx context.Context, trancheID kernel.TrancheID) ([]Application, error)
}

// TrancheGate admits submissions into a tranche and keeps its counter
type TrancheGate interface {
	Admit(ctx context.Context, id kernel.TrancheID, assertedOffer kernel.JobOfferID) (*tranche.Tranche, error)
	RecordApplication(ctx context.Context, id kernel.TrancheID) error
}

// OfferReader resolves the offer named in notification emails
type OfferReader interface {
	GetJobOffer(ctx context.Context, id kernel.JobOfferID) (*joboffer.JobOffer, error)
}
