package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/acara-auth/internal/domain/entity"
	repo "github.com/oksasatya/acara-auth/internal/domain/repository"
	"github.com/oksasatya/acara-auth/pkg/helpers"
)

// RegistrationNotifier is told about every newly created user.
type RegistrationNotifier interface {
	NotifyRegistration(ctx context.Context, u entity.User)
}

// NewUser is the already validated input for UserStore.Create.
type NewUser struct {
	FullName string
	Username string
	Email    string
	Password string
	Role     string
}

// UserResponse is the external shape of a user.
type UserResponse struct {
	ID             string    `json:"id"`
	FullName       string    `json:"fullName"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	ProfilePicture string    `json:"profilePicture"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}

type UserStore struct {
	Repo     repo.UserRepository
	Codec    *helpers.CredentialCodec
	Notifier RegistrationNotifier
	Logger   *logrus.Logger

	wg sync.WaitGroup
}

func NewUserStore(r repo.UserRepository, codec *helpers.CredentialCodec, notifier RegistrationNotifier, logger *logrus.Logger) *UserStore {
	return &UserStore{Repo: r, Codec: codec, Notifier: notifier, Logger: logger}
}

// Create stores a new user with its password encoded, then notifies in the
// background. The notification outcome never changes the result.
func (s *UserStore) Create(ctx context.Context, in NewUser) (*entity.User, error) {
	if strings.Contains(in.Username, "@") {
		return nil, newValidationError("username must not contain '@'", map[string]string{"username": "must not contain '@'"})
	}
	role, err := entity.ParseRole(in.Role)
	if err != nil {
		return nil, newValidationError("role "+err.Error(), map[string]string{"role": "must be one of: admin, user"})
	}
	code, err := helpers.GenActivationCode()
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		FullName:       in.FullName,
		Username:       in.Username,
		Email:          in.Email,
		Password:       s.Codec.Encode(in.Password),
		Role:           role,
		ProfilePicture: entity.DefaultProfilePicture,
		IsActive:       false,
		ActivationCode: code,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		switch {
		case errors.Is(err, repo.ErrConflict):
			return nil, ErrConflict
		case errors.Is(err, repo.ErrInvalidRecord):
			return nil, newValidationError("invalid user record", nil)
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("username", u.Username).Error("create user failed")
		}
		return nil, err
	}

	s.notify(ctx, *u)
	return u, nil
}

func (s *UserStore) notify(ctx context.Context, u entity.User) {
	if s.Notifier == nil {
		return
	}
	detached := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil && s.Logger != nil {
				s.Logger.WithField("panic", r).WithField("user_id", u.ID).Error("registration notifier panicked")
			}
		}()
		s.Notifier.NotifyRegistration(detached, u)
	}()
}

// Wait blocks until every dispatched notification has finished.
func (s *UserStore) Wait() {
	s.wg.Wait()
}

// FindOne looks a user up by email (case-insensitive) or username.
func (s *UserStore) FindOne(ctx context.Context, identifier string) (*entity.User, error) {
	u, err := s.Repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// Serialize drops the password and activation code.
func (s *UserStore) Serialize(u *entity.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		FullName:       u.FullName,
		Username:       u.Username,
		Email:          u.Email,
		Role:           string(u.Role),
		ProfilePicture: u.ProfilePicture,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
	}
}
