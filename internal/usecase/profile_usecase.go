package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileUsecase exposes the account profile. Accounts are created by the
// external auth provider; only name and phone are editable here.
type ProfileUsecase interface {
	// GetProfile retrieves the caller's account.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// UpdateProfile changes the caller's name and phone and returns the
	// refreshed account.
	UpdateProfile(ctx context.Context, userID uuid.UUID, name, phone string) (*entity.User, error)
}
