package service

import (
	"context"
	"fmt"
	"log"

	"food_delivery/internal/model"
	"food_delivery/internal/repository"
	"food_delivery/internal/utils"
)

// AuthResult is the outcome of an asynchronous login.
type AuthResult struct {
	User *model.User
	Err  error
}

// AuthService registers and authenticates users by phone number and PIN.
type AuthService interface {
	Register(ctx context.Context, phone, pin string) (*model.User, error)
	Login(ctx context.Context, phone, pin string) (*model.User, error)
	LoginAsync(ctx context.Context, phone, pin string) <-chan AuthResult
}

type authService struct {
	userRepo   repository.UserRepository
	sessions   SessionService
	bcryptCost int
}

// NewAuthService creates a new AuthService. bcryptCost below utils.MinPINCost is raised to it.
func NewAuthService(userRepo repository.UserRepository, sessions SessionService, bcryptCost int) AuthService {
	if bcryptCost < utils.MinPINCost {
		bcryptCost = utils.MinPINCost
	}
	return &authService{
		userRepo:   userRepo,
		sessions:   sessions,
		bcryptCost: bcryptCost,
	}
}

func validateCredentials(phone, pin string) (string, string, error) {
	phone = utils.NormalizeDigits(phone)
	pin = utils.NormalizeDigits(pin)
	if !utils.IsValidPhone(phone) {
		return "", "", invalid("phone", "must be exactly 10 digits")
	}
	if !utils.IsValidPIN(pin) {
		return "", "", invalid("PIN", "must be exactly 4 digits")
	}
	return phone, pin, nil
}

// Register creates an account for a new phone number. An existing phone is
// returned as is; whether the PIN matches is for Login to decide.
// Register does not log the user in.
func (s *authService) Register(ctx context.Context, phone, pin string) (*model.User, error) {
	phone, pin, err := validateCredentials(phone, pin)
	if err != nil {
		return nil, err
	}
	user, _, err := s.register(ctx, phone, pin)
	return user, err
}

// register expects validated input and reports whether a user was created.
func (s *authService) register(ctx context.Context, phone, pin string) (*model.User, bool, error) {
	existingUser, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return existingUser, false, nil
	}

	hashedPIN, err := utils.HashPIN(pin, s.bcryptCost)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash PIN: %w", err)
	}
	user := &model.User{
		Phone:      phone,
		SecretHash: hashedPIN,
	}
	if err := s.userRepo.Create(ctx, *user); err != nil {
		return nil, false, fmt.Errorf("failed to create user in repository: %w", err)
	}
	log.Printf("INFO: registered user %s", phone)
	return user, true, nil
}

// Login checks the PIN of a known phone, or registers an unknown one, and on
// success makes the user the current session. A wrong PIN returns
// ErrInvalidCredentials and changes nothing.
//
// If ctx is cancelled while the PIN is being hashed or compared, the session
// is left untouched and ctx.Err() is returned.
func (s *authService) Login(ctx context.Context, phone, pin string) (*model.User, error) {
	phone, pin, err := validateCredentials(phone, pin)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("error finding user by phone: %w", err)
	}
	if user == nil {
		if user, _, err = s.register(ctx, phone, pin); err != nil {
			return nil, err
		}
	} else if err := s.verify(ctx, user, pin); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.sessions.Start(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) verify(ctx context.Context, user *model.User, pin string) error {
	if user.SecretHash != "" {
		if !utils.CheckPINHash(pin, user.SecretHash) {
			return ErrInvalidCredentials
		}
		return nil
	}

	// Records from the plaintext era carry only the PIN; swap it for a hash.
	if user.LegacyPIN == "" || !utils.CheckLegacyPIN(pin, user.LegacyPIN) {
		return ErrInvalidCredentials
	}
	hashedPIN, err := utils.HashPIN(pin, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash PIN: %w", err)
	}
	user.SecretHash = hashedPIN
	user.LegacyPIN = ""
	if err := s.userRepo.Update(ctx, *user); err != nil {
		return fmt.Errorf("failed to upgrade legacy PIN: %w", err)
	}
	log.Printf("INFO: replaced plaintext PIN of user %s with a hash", user.Phone)
	return nil
}

// LoginAsync runs Login in the background and delivers exactly one result.
// The channel is buffered, so a caller that stops waiting leaks nothing; to
// make sure an abandoned login does not log the user in, cancel ctx.
func (s *authService) LoginAsync(ctx context.Context, phone, pin string) <-chan AuthResult {
	out := make(chan AuthResult, 1)
	go func() {
		user, err := s.Login(ctx, phone, pin)
		out <- AuthResult{User: user, Err: err}
	}()
	return out
}
