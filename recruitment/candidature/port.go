package candidature

import (
	"context"

	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
)

// Repository reads dossiers. Authoring happens outside this service.
type Repository interface {
	FindByUserID(ctx context.Context, userID kernel.UserID) (*Candidature, error)

	// ListByUserIDs loads the dossiers of many users in a single query.
	// Users without a dossier are simply absent from the result.
	ListByUserIDs(ctx context.Context, userIDs []kernel.UserID) ([]Candidature, error)
}
