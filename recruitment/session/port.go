package session

import (
	"context"

	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
)

type Repository interface {
	Create(ctx context.Context, s *Session) error
	GetByID(ctx context.Context, id kernel.SessionID) (*Session, error)

	// List returns sessions, latest start date first
	List(ctx context.Context) ([]Session, error)

	Exists(ctx context.Context, id kernel.SessionID) (bool, error)
}
