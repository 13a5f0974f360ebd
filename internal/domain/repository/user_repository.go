package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the read/update operations the core needs from the
// user table. Accounts themselves are created by the external auth provider.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// UpdateProfile updates the caller-editable profile fields.
	UpdateProfile(ctx context.Context, id uuid.UUID, name, phone string) error
}
