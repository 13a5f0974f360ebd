package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role distinguishes regular shoppers from admin-panel users. The role gates
// the admin endpoints and nothing else in the order core.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is an account mirrored from the external auth provider. The provider
// owns credentials and sessions; this side only stores profile data and the
// role used for admin gating.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user may access the admin panel.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
