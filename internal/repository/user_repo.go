package repository

import (
	"context"

	"food_delivery/internal/model"
)

// UserRepository defines operations on the persisted users collection.
type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	FindByPhone(ctx context.Context, phone string) (*model.User, error)
	Create(ctx context.Context, user model.User) error
	Update(ctx context.Context, user model.User) error
}

type userRepository struct {
	store RecordStore
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(store RecordStore) UserRepository {
	return &userRepository{store: store}
}

// List returns every user. A corrupt collection reads as empty.
func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	users, _, err := loadJSON[[]model.User](ctx, r.store, KeyUsers)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// FindByPhone retrieves a user by their phone number
func (r *userRepository) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Phone == phone {
			return &users[i], nil
		}
	}
	return nil, nil // Not found is not an error, the service decides what it means
}

// Create appends a user to the collection.
func (r *userRepository) Create(ctx context.Context, user model.User) error {
	users, err := r.List(ctx)
	if err != nil {
		return err
	}
	return saveJSON(ctx, r.store, KeyUsers, append(users, user))
}

// Update replaces the user with the same phone. Unknown phones are appended.
func (r *userRepository) Update(ctx context.Context, user model.User) error {
	users, err := r.List(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range users {
		if users[i].Phone == user.Phone {
			users[i] = user
			replaced = true
			break
		}
	}
	if !replaced {
		users = append(users, user)
	}
	return saveJSON(ctx, r.store, KeyUsers, users)
}
