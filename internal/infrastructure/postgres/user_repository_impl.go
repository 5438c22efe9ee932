package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/oksasatya/acara-auth/internal/domain/entity"
	"github.com/oksasatya/acara-auth/internal/domain/repository"
)

// Querier is the subset of *pgxpool.Pool the repository needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const userColumns = `id, full_name, username, email, password, role, profile_picture, is_active, activation_code, created_at`

type UserRepository struct {
	db Querier
}

func NewUserRepository(db Querier) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	id := uuid.NewString()
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (id, full_name, username, email, password, role, profile_picture, is_active, activation_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`, id, u.FullName, u.Username, u.Email, u.Password, string(u.Role), u.ProfilePicture, u.IsActive, u.ActivationCode)

	if err := row.Scan(&u.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return oops.Code("USER_CONFLICT").
					With("constraint", pgErr.ConstraintName).
					Wrap(repository.ErrConflict)
			case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
				return oops.Code("USER_INVALID").
					With("constraint", pgErr.ConstraintName).
					Wrap(repository.ErrInvalidRecord)
			}
		}
		return oops.Code("USER_CREATE_FAILED").
			With("username", u.Username).
			Wrap(err)
	}
	u.ID = id
	return nil
}

func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE LOWER(email) = LOWER($1) OR username = $1
		ORDER BY created_at
		LIMIT 1
	`, identifier)

	u, err := scanUser(row)
	if err != nil {
		return nil, wrapLookup(err, "identifier", identifier)
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)

	u, err := scanUser(row)
	if err != nil {
		return nil, wrapLookup(err, "id", id)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var role string
	if err := row.Scan(&u.ID, &u.FullName, &u.Username, &u.Email, &u.Password, &role,
		&u.ProfilePicture, &u.IsActive, &u.ActivationCode, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return u, nil
}

func wrapLookup(err error, key, value string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return oops.Code("USER_NOT_FOUND").With(key, value).Wrap(repository.ErrNotFound)
	}
	// a malformed uuid can never match a row
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation {
		return oops.Code("USER_NOT_FOUND").With(key, value).Wrap(repository.ErrNotFound)
	}
	return oops.Code("USER_LOOKUP_FAILED").With(key, value).Wrap(err)
}

var _ repository.UserRepository = (*UserRepository)(nil)
