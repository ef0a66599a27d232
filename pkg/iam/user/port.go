package user

import (
	"context"

	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
)

type Repository interface {
	Save(ctx context.Context, u User) error
	FindByID(ctx context.Context, id kernel.UserID) (*User, error)
	FindByEmail(ctx context.Context, email kernel.Email) (*User, error)
}
