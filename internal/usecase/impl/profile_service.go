package impl

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type profileService struct {
	userRepo repository.UserRepository
}

// ProfileServiceParams holds dependencies for the profile service, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
}

// NewProfileService creates a new account profile service instance.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		userRepo: params.UserRepo,
	}
}

// GetProfile retrieves the caller's account.
func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load profile")
	}

	return user, nil
}

// UpdateProfile changes the caller's name and phone.
func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, name, phone string) (*entity.User, error) {
	if name == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("name is required")
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, name, phone); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, err
	}

	return s.GetProfile(ctx, userID)
}
