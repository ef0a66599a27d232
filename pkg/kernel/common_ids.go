package kernel

import "github.com/google/uuid"

type UserID string

func NewUserID(id string) UserID { return UserID(id) }
func (u UserID) String() string  { return string(u) }
func (u UserID) IsEmpty() bool   { return string(u) == "" }

type ApplicationID string

func NewApplicationID(id string) ApplicationID { return ApplicationID(id) }
func (a ApplicationID) String() string         { return string(a) }
func (a ApplicationID) IsEmpty() bool          { return string(a) == "" }

// IsValidID reports whether s is a well-formed identifier (UUID)
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
