package sessioninfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
	"github.com/0Omaaar/iRecruitApp/recruitment/session"
	"github.com/jmoiron/sqlx"
)

type PostgresSessionRepository struct {
	db *sqlx.DB
}

func NewPostgresSessionRepository(db *sqlx.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

type sessionModel struct {
	ID        string    `db:"id"`
	YearLabel string    `db:"year_label"`
	IsActive  bool      `db:"is_active"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (m sessionModel) toEntity() session.Session {
	return session.Session{
		ID:        kernel.SessionID(m.ID),
		YearLabel: m.YearLabel,
		IsActive:  m.IsActive,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *PostgresSessionRepository) Create(ctx context.Context, s *session.Session) error {
	query := `
		INSERT INTO sessions (id, year_label, is_active, start_date, end_date, created_at, updated_at)
		VALUES (:id, :year_label, :is_active, :start_date, :end_date, :created_at, :updated_at)
	`
	model := sessionModel{
		ID:        s.ID.String(),
		YearLabel: s.YearLabel,
		IsActive:  s.IsActive,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *PostgresSessionRepository) GetByID(ctx context.Context, id kernel.SessionID) (*session.Session, error) {
	var m sessionModel
	err := r.db.GetContext(ctx, &m, `
		SELECT id, year_label, is_active, start_date, end_date, created_at, updated_at
		FROM sessions WHERE id = $1`, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, session.ErrSessionNotFound().WithDetail("id", id.String())
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	s := m.toEntity()
	return &s, nil
}

func (r *PostgresSessionRepository) List(ctx context.Context) ([]session.Session, error) {
	var models []sessionModel
	err := r.db.SelectContext(ctx, &models, `
		SELECT id, year_label, is_active, start_date, end_date, created_at, updated_at
		FROM sessions ORDER BY start_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	out := make([]session.Session, 0, len(models))
	for _, m := range models {
		out = append(out, m.toEntity())
	}
	return out, nil
}

func (r *PostgresSessionRepository) Exists(ctx context.Context, id kernel.SessionID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM sessions WHERE id = $1)`, id.String())
	if err != nil {
		return false, fmt.Errorf("failed to check session existence: %w", err)
	}
	return exists, nil
}
