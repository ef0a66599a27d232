package auth

import (
	"context"
	"errors"

	"github.com/0Omaaar/iRecruitApp/pkg/errx"
	"github.com/0Omaaar/iRecruitApp/pkg/iam/user"
	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
)

type LoginRequest struct {
	Email    kernel.Email `json:"email" validate:"required,email"`
	Password string       `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresIn   int64     `json:"expiresIn"`
	User        user.User `json:"user"`
}

type AuthService struct {
	users     user.Repository
	tokens    TokenService
	passwords *PasswordService
}

func NewAuthService(users user.Repository, tokens TokenService, passwords *PasswordService) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
	}
}

// Login checks the credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := s.users.FindByEmail(ctx, req.Email.Normalize())
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound()) {
			return nil, ErrInvalidCredentials()
		}
		return nil, errx.Wrap(err, "failed to load user", errx.TypeInternal)
	}

	if err := s.passwords.Compare(u.PasswordHash, req.Password); err != nil {
		return nil, err
	}
	if !u.CanSignIn() {
		return nil, ErrInactiveAccount()
	}

	token, err := s.tokens.GenerateAccessToken(*u)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
		User:        *u,
	}, nil
}

// Me returns the account behind an authenticated request
func (s *AuthService) Me(ctx context.Context, id kernel.UserID) (*user.User, error) {
	return s.users.FindByID(ctx, id)
}
