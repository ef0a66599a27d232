package trancheinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
	"github.com/0Omaaar/iRecruitApp/recruitment/tranche"
	"github.com/jmoiron/sqlx"
)

type PostgresTrancheRepository struct {
	db *sqlx.DB
}

func NewPostgresTrancheRepository(db *sqlx.DB) *PostgresTrancheRepository {
	return &PostgresTrancheRepository{db: db}
}

const selectColumns = `id, name, session_id, job_offer_id, start_date, end_date, is_open,
	max_candidates, current_candidates, created_at, updated_at`

type trancheModel struct {
	ID                string         `db:"id"`
	Name              string         `db:"name"`
	SessionID         sql.NullString `db:"session_id"`
	JobOfferID        sql.NullString `db:"job_offer_id"`
	StartDate         time.Time      `db:"start_date"`
	EndDate           time.Time      `db:"end_date"`
	IsOpen            bool           `db:"is_open"`
	MaxCandidates     sql.NullInt64  `db:"max_candidates"`
	CurrentCandidates int            `db:"current_candidates"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

func (m trancheModel) toEntity() tranche.Tranche {
	t := tranche.Tranche{
		ID:                kernel.TrancheID(m.ID),
		Name:              m.Name,
		SessionID:         kernel.SessionID(m.SessionID.String),
		JobOfferID:        kernel.JobOfferID(m.JobOfferID.String),
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		IsOpen:            m.IsOpen,
		CurrentCandidates: m.CurrentCandidates,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	if m.MaxCandidates.Valid {
		limit := int(m.MaxCandidates.Int64)
		t.MaxCandidates = &limit
	}
	return t
}

func fromEntity(t *tranche.Tranche) trancheModel {
	m := trancheModel{
		ID:                t.ID.String(),
		Name:              t.Name,
		SessionID:         sql.NullString{String: t.SessionID.String(), Valid: !t.SessionID.IsEmpty()},
		JobOfferID:        sql.NullString{String: t.JobOfferID.String(), Valid: !t.JobOfferID.IsEmpty()},
		StartDate:         t.StartDate,
		EndDate:           t.EndDate,
		IsOpen:            t.IsOpen,
		CurrentCandidates: t.CurrentCandidates,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
	if t.MaxCandidates != nil {
		m.MaxCandidates = sql.NullInt64{Int64: int64(*t.MaxCandidates), Valid: true}
	}
	return m
}

func (r *PostgresTrancheRepository) Create(ctx context.Context, t *tranche.Tranche) error {
	query := `
		INSERT INTO tranches (
			id, name, session_id, job_offer_id, start_date, end_date, is_open,
			max_candidates, current_candidates, created_at, updated_at
		) VALUES (
			:id, :name, :session_id, :job_offer_id, :start_date, :end_date, :is_open,
			:max_candidates, :current_candidates, :created_at, :updated_at
		)
	`
	if _, err := r.db.NamedExecContext(ctx, query, fromEntity(t)); err != nil {
		return fmt.Errorf("failed to create tranche: %w", err)
	}
	return nil
}

func (r *PostgresTrancheRepository) GetByID(ctx context.Context, id kernel.TrancheID) (*tranche.Tranche, error) {
	var m trancheModel
	err := r.db.GetContext(ctx, &m, `SELECT `+selectColumns+` FROM tranches WHERE id = $1`, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tranche.ErrTrancheNotFound().WithDetail("id", id.String())
		}
		return nil, fmt.Errorf("failed to get tranche: %w", err)
	}
	t := m.toEntity()
	return &t, nil
}

func (r *PostgresTrancheRepository) ListByJobOffer(ctx context.Context, offerID kernel.JobOfferID) ([]tranche.Tranche, error) {
	var models []trancheModel
	err := r.db.SelectContext(ctx, &models,
		`SELECT `+selectColumns+` FROM tranches WHERE job_offer_id = $1 ORDER BY start_date ASC`,
		offerID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list tranches: %w", err)
	}
	out := make([]tranche.Tranche, 0, len(models))
	for _, m := range models {
		out = append(out, m.toEntity())
	}
	return out, nil
}

func (r *PostgresTrancheRepository) SetOpen(ctx context.Context, id kernel.TrancheID, open bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tranches SET is_open = $2, updated_at = NOW() WHERE id = $1`, id.String(), open)
	if err != nil {
		return fmt.Errorf("failed to update tranche: %w", err)
	}
	return requireRow(result, id)
}

func (r *PostgresTrancheRepository) IncrementCandidates(ctx context.Context, id kernel.TrancheID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tranches SET current_candidates = current_candidates + 1, updated_at = NOW() WHERE id = $1`,
		id.String())
	if err != nil {
		return fmt.Errorf("failed to increment tranche candidates: %w", err)
	}
	return requireRow(result, id)
}

func (r *PostgresTrancheRepository) Exists(ctx context.Context, id kernel.TrancheID) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM tranches WHERE id = $1)`, id.String()); err != nil {
		return false, fmt.Errorf("failed to check tranche existence: %w", err)
	}
	return exists, nil
}

func requireRow(result sql.Result, id kernel.TrancheID) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return tranche.ErrTrancheNotFound().WithDetail("id", id.String())
	}
	return nil
}
