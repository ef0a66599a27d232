package auth

import (
	"errors"
	"time"

	"github.com/0Omaaar/iRecruitApp/pkg/errx"
	"github.com/0Omaaar/iRecruitApp/pkg/iam/user"
	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and validates access tokens
type TokenService interface {
	GenerateAccessToken(u user.User) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	TTL() time.Duration
}

// TokenClaims is the payload of an access token
type TokenClaims struct {
	UserID kernel.UserID `json:"user_id"`
	Email  kernel.Email  `json:"email"`
	Role   user.Role     `json:"role"`
	Scopes []string      `json:"scopes"`
	jwt.RegisteredClaims
}

func (c *TokenClaims) AuthContext() *AuthContext {
	id := c.UserID
	return &AuthContext{
		UserID: &id,
		Email:  c.Email,
		Role:   c.Role,
		Scopes: c.Scopes,
	}
}

type JWTService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewJWTService(secret string, ttl time.Duration, issuer string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}
}

// WithClock overrides the time source, for tests
func (s *JWTService) WithClock(now func() time.Time) *JWTService {
	s.now = now
	return s
}

func (s *JWTService) TTL() time.Duration {
	return s.ttl
}

func (s *JWTService) GenerateAccessToken(u user.User) (string, error) {
	now := s.now()
	claims := TokenClaims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
		Scopes: ScopesForRole(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errx.Wrap(err, "failed to sign access token", errx.TypeInternal)
	}
	return signed, nil
}

func (s *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrInvalidToken().WithDetail("reason", "expired")
		}
		return nil, ErrInvalidToken().WithCause(err)
	}
	if !token.Valid || claims.UserID.IsEmpty() {
		return nil, ErrInvalidToken()
	}
	return claims, nil
}
