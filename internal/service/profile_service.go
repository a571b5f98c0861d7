package service

import (
	"context"
	"fmt"

	"food_delivery/internal/model"
	"food_delivery/internal/repository"
	"food_delivery/internal/utils"
)

// ProfileService edits the display name and address of the logged-in user.
type ProfileService interface {
	Get(ctx context.Context) (*model.User, error)
	Update(ctx context.Context, update model.ProfileUpdate) (*model.User, error)
}

type profileService struct {
	userRepo repository.UserRepository
	sessions SessionService
}

// NewProfileService creates a new ProfileService
func NewProfileService(userRepo repository.UserRepository, sessions SessionService) ProfileService {
	return &profileService{userRepo: userRepo, sessions: sessions}
}

// Get returns the stored user behind the current session.
func (s *profileService) Get(ctx context.Context) (*model.User, error) {
	session, err := s.sessions.RequireCurrent(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByPhone(ctx, session.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for profile: %w", err)
	}
	if user == nil {
		// The users collection was lost or reset; fall back to what the session knows.
		return &model.User{Phone: session.Phone, DisplayName: session.DisplayName, Address: session.Address}, nil
	}
	return user, nil
}

// Update stores the new profile fields on the user record and refreshes the session.
func (s *profileService) Update(ctx context.Context, update model.ProfileUpdate) (*model.User, error) {
	update.DisplayName = utils.NormalizeText(update.DisplayName)
	update.Address = normalizeAddress(update.Address)
	if !utils.IsValidZip(update.Address.Zip) {
		return nil, invalid("zip", "must be at most 6 digits")
	}

	session, err := s.sessions.RequireCurrent(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByPhone(ctx, session.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for profile: %w", err)
	}
	if user == nil {
		// Writing a record here would create an account without a PIN hash.
		return nil, ErrUserNotFound
	}
	user.DisplayName = update.DisplayName
	user.Address = update.Address

	if err := s.userRepo.Update(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if err := s.sessions.Start(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

func normalizeAddress(a model.Address) model.Address {
	return model.Address{
		Street: utils.NormalizeText(a.Street),
		City:   utils.NormalizeText(a.City),
		State:  utils.NormalizeText(a.State),
		Zip:    utils.NormalizeDigits(a.Zip),
	}
}
