package applicationinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
	"github.com/0Omaaar/iRecruitApp/recruitment/application"
	"github.com/jmoiron/sqlx"
)

// PostgresApplicationRepository implements application.Repository
// and joboffer.AppliedOffers.
type PostgresApplicationRepository struct {
	db *sqlx.DB
}

func NewPostgresApplicationRepository(db *sqlx.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const selectColumns = `id, user_id, tranche_id, offer_id, session_id, status, statut,
	application_diploma, declaration_pdf, motivation_letter_pdf, recu_candidature, created_at, updated_at`

type applicationModel struct {
	ID                  string                       `db:"id"`
	UserID              string                       `db:"user_id"`
	TrancheID           sql.NullString               `db:"tranche_id"`
	OfferID             sql.NullString               `db:"offer_id"`
	SessionID           sql.NullString               `db:"session_id"`
	Status              sql.NullString               `db:"status"`
	Statut              kernel.OptionalLocalizedText `db:"statut"`
	ApplicationDiploma  string                       `db:"application_diploma"`
	DeclarationPdf      string                       `db:"declaration_pdf"`
	MotivationLetterPdf string                       `db:"motivation_letter_pdf"`
	RecuCandidature     *time.Time                   `db:"recu_candidature"`
	CreatedAt           time.Time                    `db:"created_at"`
	UpdatedAt           time.Time                    `db:"updated_at"`
}

// toEntity resolves the canonical status; rows written before the status
// column existed only carry the localized label.
func (m applicationModel) toEntity() application.Application {
	status := application.Status(m.Status.String)
	if !m.Status.Valid || !status.IsValid() {
		status = application.StatusFromLabel(m.Statut.LocalizedText)
	}

	return application.Application{
		ID:                 kernel.ApplicationID(m.ID),
		UserID:             kernel.UserID(m.UserID),
		TrancheID:          kernel.TrancheID(m.TrancheID.String),
		OfferID:            kernel.JobOfferID(m.OfferID.String),
		SessionID:          kernel.SessionID(m.SessionID.String),
		Status:             status,
		ApplicationDiploma: m.ApplicationDiploma,
		Attachment: application.Attachment{
			DeclarationPdf:      m.DeclarationPdf,
			MotivationLetterPdf: m.MotivationLetterPdf,
		},
		RecuCandidature: m.RecuCandidature,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func fromEntity(a *application.Application) applicationModel {
	label := a.Status.Label()
	return applicationModel{
		ID:                  a.ID.String(),
		UserID:              a.UserID.String(),
		TrancheID:           nullable(a.TrancheID.String()),
		OfferID:             nullable(a.OfferID.String()),
		SessionID:           nullable(a.SessionID.String()),
		Status:              nullable(string(a.Status)),
		Statut:              kernel.NewOptionalLocalizedText(&label),
		ApplicationDiploma:  a.ApplicationDiploma,
		DeclarationPdf:      a.Attachment.DeclarationPdf,
		MotivationLetterPdf: a.Attachment.MotivationLetterPdf,
		RecuCandidature:     a.RecuCandidature,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a *application.Application) error {
	query := `
		INSERT INTO applications (
			id, user_id, tranche_id, offer_id, session_id, status, statut,
			application_diploma, declaration_pdf, motivation_letter_pdf,
			recu_candidature, created_at, updated_at
		) VALUES (
			:id, :user_id, :tranche_id, :offer_id, :session_id, :status, :statut,
			:application_diploma, :declaration_pdf, :motivation_letter_pdf,
			:recu_candidature, :created_at, :updated_at
		)
	`
	if _, err := r.db.NamedExecContext(ctx, query, fromEntity(a)); err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

func (r *PostgresApplicationRepository) Update(ctx context.Context, a *application.Application) error {
	query := `
		UPDATE applications SET
			status = :status,
			statut = :statut,
			application_diploma = :application_diploma,
			declaration_pdf = :declaration_pdf,
			motivation_letter_pdf = :motivation_letter_pdf,
			recu_candidature = :recu_candidature,
			updated_at = :updated_at
		WHERE id = :id
	`
	result, err := r.db.NamedExecContext(ctx, query, fromEntity(a))
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}
	return requireRow(result, a.ID)
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	var m applicationModel
	err := r.db.GetContext(ctx, &m, `SELECT `+selectColumns+` FROM applications WHERE id = $1`, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, application.ErrApplicationNotFound().WithDetail("id", id.String())
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	a := m.toEntity()
	return &a, nil
}

func (r *PostgresApplicationRepository) Delete(ctx context.Context, id kernel.ApplicationID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	return requireRow(result, id)
}

func (r *PostgresApplicationRepository) ListAll(ctx context.Context) ([]application.Application, error) {
	return r.list(ctx, `SELECT `+selectColumns+` FROM applications ORDER BY created_at DESC`)
}

func (r *PostgresApplicationRepository) ListByUser(ctx context.Context, userID kernel.UserID) ([]application.Application, error) {
	return r.list(ctx,
		`SELECT `+selectColumns+` FROM applications WHERE user_id = $1 ORDER BY created_at DESC`,
		userID.String())
}

func (r *PostgresApplicationRepository) ListByTranche(ctx context.Context, trancheID kernel.TrancheID) ([]application.Application, error) {
	return r.list(ctx,
		`SELECT `+selectColumns+` FROM applications WHERE tranche_id = $1 ORDER BY created_at DESC`,
		trancheID.String())
}

// OfferIDsByUser lists the offers a user already applied to
func (r *PostgresApplicationRepository) OfferIDsByUser(ctx context.Context, userID kernel.UserID) ([]kernel.JobOfferID, error) {
	var ids []string
	err := r.db.SelectContext(ctx, &ids,
		`SELECT DISTINCT offer_id FROM applications WHERE user_id = $1 AND offer_id IS NOT NULL`,
		userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list applied offers: %w", err)
	}
	out := make([]kernel.JobOfferID, 0, len(ids))
	for _, id := range ids {
		out = append(out, kernel.JobOfferID(id))
	}
	return out, nil
}

func (r *PostgresApplicationRepository) list(ctx context.Context, query string, args ...any) ([]application.Application, error) {
	var models []applicationModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	out := make([]application.Application, 0, len(models))
	for _, m := range models {
		out = append(out, m.toEntity())
	}
	return out, nil
}

func requireRow(result sql.Result, id kernel.ApplicationID) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return application.ErrApplicationNotFound().WithDetail("id", id.String())
	}
	return nil
}
