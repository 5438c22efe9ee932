package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/acara-auth/internal/domain/entity"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict means a unique field (username, email) is already taken
	ErrConflict = errors.New("conflict")
	// ErrInvalidRecord means the store rejected a value (e.g. unknown role)
	ErrInvalidRecord = errors.New("invalid record")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// Create persists u and fills ID and CreatedAt.
	Create(ctx context.Context, u *entity.User) error
	// FindByIdentifier matches identifier against email or username.
	FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
}
