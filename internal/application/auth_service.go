package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/acara-auth/pkg/helpers"
	"github.com/oksasatya/acara-auth/pkg/validation"
)

type RegisterInput struct {
	FullName        string `json:"fullName" validate:"required"`
	Username        string `json:"username" validate:"required,excludes=@"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"omitempty,eqfield=Password"`
}

type LoginInput struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type AuthService struct {
	Store    *UserStore
	Tokens   *helpers.TokenManager
	Validate *validator.Validate
	Logger   *logrus.Logger
}

func NewAuthService(store *UserStore, tokens *helpers.TokenManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Store: store, Tokens: tokens, Validate: validation.New(), Logger: logger}
}

// Register validates the input and creates a user with role user.
// An empty confirmPassword is accepted; a non-empty one must equal password.
// Usernames may not contain "@" so they never shadow an email at login.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (UserResponse, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if err := s.Validate.Struct(in); err != nil {
		return UserResponse{}, registerValidationError(err)
	}

	u, err := s.Store.Create(ctx, NewUser{
		FullName: in.FullName,
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		return UserResponse{}, err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user registered")
	}
	return s.Store.Serialize(u), nil
}

// registerValidationError reports a confirmation mismatch as "Passwords must match".
func registerValidationError(err error) *ValidationError {
	msg := validation.Message(err)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "confirmPassword" && verrs[0].Tag() == "eqfield" {
		msg = "Passwords must match"
	}
	return newValidationError(msg, validation.ToDetails(err))
}

// Login returns a signed token and its expiry. Unknown identifiers and
// wrong passwords both yield ErrUserNotFound.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, time.Time, error) {
	in.Identifier = strings.TrimSpace(in.Identifier)
	if err := s.Validate.Struct(in); err != nil {
		return "", time.Time{}, newValidationError(validation.Message(err), validation.ToDetails(err))
	}

	u, err := s.Store.FindOne(ctx, in.Identifier)
	if err != nil {
		return "", time.Time{}, err
	}
	if !s.Store.Codec.Matches(in.Password, u.Password) {
		return "", time.Time{}, ErrUserNotFound
	}

	token, exp, err := s.Tokens.Issue(u.ID, string(u.Role))
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("issue token failed")
		}
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// Me returns the serialized user behind an authenticated request.
func (s *AuthService) Me(ctx context.Context, id string) (UserResponse, error) {
	u, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}
	return s.Store.Serialize(u), nil
}
