package repository

import (
	"context"
	"fmt"

	"food_delivery/internal/model"
)

// SessionRepository stores the single current-session value.
type SessionRepository interface {
	Load(ctx context.Context) (*model.Session, error)
	Save(ctx context.Context, session model.Session) error
	Clear(ctx context.Context) error
}

type sessionRepository struct {
	store RecordStore
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(store RecordStore) SessionRepository {
	return &sessionRepository{store: store}
}

// Load returns the current session, or nil when there is none or it is unreadable.
func (r *sessionRepository) Load(ctx context.Context) (*model.Session, error) {
	session, ok, err := loadJSON[*model.Session](ctx, r.store, KeySession)
	if err != nil || !ok || session == nil {
		return nil, err
	}
	if session.Phone == "" {
		return nil, nil
	}
	return session, nil
}

func (r *sessionRepository) Save(ctx context.Context, session model.Session) error {
	return saveJSON(ctx, r.store, KeySession, session)
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, KeySession); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
