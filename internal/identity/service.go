package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cloudnote/cloudnote/internal/notification"
)

// ErrBadCredentials covers both an unknown email and a wrong password.
// Callers must not be able to tell the two apart.
var ErrBadCredentials = errors.New("bad credentials")

// Service manages the registration and authentication flow.
type Service struct {
	repo     Repository
	hasher   PasswordHasher
	notifier notification.Notifier
}

// NewService creates a new identity service. notifier may be nil.
func NewService(repo Repository, hasher PasswordHasher, notifier notification.Notifier) *Service {
	return &Service{repo: repo, hasher: hasher, notifier: notifier}
}

// Register validates and uniquely registers a candidate identity.
//
// Every structural check and both uniqueness pre-checks run to
// completion; their failures are merged into a single *ValidationError
// so the caller sees all of them at once. Nothing is hashed or written
// until the error map is empty. A uniqueness race lost at the store is
// reported exactly like a pre-check conflict.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	errs := validateRegistration(in)

	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		errs["email"] = msgEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("check email uniqueness: %w", err)
	}
	if _, err := s.repo.FindByPhone(ctx, in.Phone); err == nil {
		errs["phone"] = msgPhoneTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("check phone uniqueness: %w", err)
	}

	if len(errs) > 0 {
		return User{}, &ValidationError{Fields: errs}
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			return User{}, &ValidationError{Fields: map[string]string{
				conflict.Field: conflictMessage(conflict.Field),
			}}
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindWelcome,
			Destination: user.Email,
			Body:        "Welcome to CloudNote, " + user.Name,
		})
	}

	return user, nil
}

// Authenticate verifies an email/password pair. Unknown email and wrong
// password both return ErrBadCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	if errs := validateLogin(email, password); len(errs) > 0 {
		return User{}, &ValidationError{Fields: errs}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrBadCredentials
		}
		return User{}, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return User{}, ErrBadCredentials
	}

	return user, nil
}

// GetByID loads a user for an already-authenticated caller.
func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.FindByID(ctx, id)
}

func conflictMessage(field string) string {
	if field == "phone" {
		return msgPhoneTaken
	}
	return msgEmailTaken
}
