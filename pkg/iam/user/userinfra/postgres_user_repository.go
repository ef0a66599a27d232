package userinfra

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/0Omaaar/iRecruitApp/pkg/errx"
	"github.com/0Omaaar/iRecruitApp/pkg/iam/user"
	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PostgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

type userModel struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	FullName     string    `db:"full_name"`
	Role         string    `db:"role"`
	PasswordHash string    `db:"password_hash"`
	Active       bool      `db:"active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (m userModel) toEntity() *user.User {
	return &user.User{
		ID:           kernel.UserID(m.ID),
		Email:        kernel.Email(m.Email),
		FullName:     m.FullName,
		Role:         user.Role(m.Role),
		PasswordHash: m.PasswordHash,
		Active:       m.Active,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromEntity(u user.User) userModel {
	return userModel{
		ID:           u.ID.String(),
		Email:        u.Email.Normalize().String(),
		FullName:     u.FullName,
		Role:         string(u.Role),
		PasswordHash: u.PasswordHash,
		Active:       u.Active,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

const userColumns = `id, email, full_name, role, password_hash, active, created_at, updated_at`

// Save inserts or updates a user by id
func (r *PostgresUserRepository) Save(ctx context.Context, u user.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (:id, :email, :full_name, :role, :password_hash, :active, :created_at, :updated_at)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			full_name = EXCLUDED.full_name,
			role = EXCLUDED.role,
			password_hash = EXCLUDED.password_hash,
			active = EXCLUDED.active,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.NamedExecContext(ctx, query, fromEntity(u))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return user.ErrEmailTaken().WithDetail("email", u.Email.String())
		}
		return errx.Wrap(err, "failed to save user", errx.TypeInternal)
	}
	return nil
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	var m userModel
	err := r.db.GetContext(ctx, &m, `SELECT `+userColumns+` FROM users WHERE id = $1`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrUserNotFound().WithDetail("id", id.String())
	}
	if err != nil {
		return nil, errx.Wrap(err, "failed to find user", errx.TypeInternal)
	}
	return m.toEntity(), nil
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	var m userModel
	err := r.db.GetContext(ctx, &m, `SELECT `+userColumns+` FROM users WHERE email = $1`, email.Normalize().String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrUserNotFound()
	}
	if err != nil {
		return nil, errx.Wrap(err, "failed to find user by email", errx.TypeInternal)
	}
	return m.toEntity(), nil
}
