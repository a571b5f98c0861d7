package service

import (
	"context"
	"fmt"

	"food_delivery/internal/model"
	"food_delivery/internal/repository"
)

// SessionService records which user is logged in on this device.
// It trusts whatever is stored; there is no server-side validation.
type SessionService interface {
	Start(ctx context.Context, user model.User) error
	End(ctx context.Context) error
	Current(ctx context.Context) (*model.Session, error)
	RequireCurrent(ctx context.Context) (*model.Session, error)
}

type sessionService struct {
	repo repository.SessionRepository
}

// NewSessionService creates a new SessionService
func NewSessionService(repo repository.SessionRepository) SessionService {
	return &sessionService{repo: repo}
}

// Start makes user the current user, replacing any existing session.
func (s *sessionService) Start(ctx context.Context, user model.User) error {
	if err := s.repo.Save(ctx, model.NewSession(user)); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	return nil
}

// End logs out. Ending without a session is fine.
func (s *sessionService) End(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

// Current returns the session, or nil when logged out. Unreadable session
// data counts as logged out.
func (s *sessionService) Current(ctx context.Context) (*model.Session, error) {
	session, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	return session, nil
}

// RequireCurrent is Current with ErrNotLoggedIn in place of a nil session.
func (s *sessionService) RequireCurrent(ctx context.Context) (*model.Session, error) {
	session, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotLoggedIn
	}
	return session, nil
}
