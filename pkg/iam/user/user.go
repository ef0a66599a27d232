package user

import (
	"time"

	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
)

// Role is the coarse permission profile of an account
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleRecruiter Role = "recruiter"
	RoleCandidate Role = "candidate"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleRecruiter, RoleCandidate:
		return true
	}
	return false
}

// User is an account able to sign in
type User struct {
	ID           kernel.UserID `json:"id"`
	Email        kernel.Email  `json:"email"`
	FullName     string        `json:"fullName"`
	Role         Role          `json:"role"`
	PasswordHash string        `json:"-"`
	Active       bool          `json:"active"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// ============================================================================
// Domain Methods
// ============================================================================

func (u *User) CanSignIn() bool {
	return u.Active && u.PasswordHash != ""
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
