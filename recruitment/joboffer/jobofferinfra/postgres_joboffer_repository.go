package jobofferinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
	"github.com/0Omaaar/iRecruitApp/recruitment/joboffer"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PostgresJobOfferRepository struct {
	db *sqlx.DB
}

func NewPostgresJobOfferRepository(db *sqlx.DB) *PostgresJobOfferRepository {
	return &PostgresJobOfferRepository{db: db}
}

type jobOfferModel struct {
	ID               string                       `db:"id"`
	Title            kernel.LocalizedText         `db:"title"`
	Description      kernel.LocalizedText         `db:"description"`
	Tag              kernel.LocalizedText         `db:"tag"`
	City             kernel.LocalizedText         `db:"city"`
	Department       kernel.LocalizedText         `db:"department"`
	Grade            kernel.OptionalLocalizedText `db:"grade"`
	Organisme        kernel.OptionalLocalizedText `db:"organisme"`
	Specialite       kernel.OptionalLocalizedText `db:"specialite"`
	Etablissement    kernel.OptionalLocalizedText `db:"etablissement"`
	ImageURL         string                       `db:"image_url"`
	DatePublication  string                       `db:"date_publication"`
	DepotAvant       string                       `db:"depot_avant"`
	CandidatesNumber int                          `db:"candidates_number"`
	Owner            string                       `db:"owner_id"`
	CreatedAt        time.Time                    `db:"created_at"`
	UpdatedAt        time.Time                    `db:"updated_at"`
}

func (m *jobOfferModel) toEntity() joboffer.JobOffer {
	return joboffer.JobOffer{
		ID:               kernel.JobOfferID(m.ID),
		Title:            m.Title,
		Description:      m.Description,
		Tag:              m.Tag,
		City:             m.City,
		Department:       m.Department,
		Grade:            m.Grade.Ptr(),
		Organisme:        m.Organisme.Ptr(),
		Specialite:       m.Specialite.Ptr(),
		Etablissement:    m.Etablissement.Ptr(),
		ImageURL:         m.ImageURL,
		DatePublication:  m.DatePublication,
		DepotAvant:       m.DepotAvant,
		CandidatesNumber: m.CandidatesNumber,
		Owner:            kernel.UserID(m.Owner),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func fromEntity(o *joboffer.JobOffer) *jobOfferModel {
	return &jobOfferModel{
		ID:               o.ID.String(),
		Title:            o.Title,
		Description:      o.Description,
		Tag:              o.Tag,
		City:             o.City,
		Department:       o.Department,
		Grade:            kernel.NewOptionalLocalizedText(o.Grade),
		Organisme:        kernel.NewOptionalLocalizedText(o.Organisme),
		Specialite:       kernel.NewOptionalLocalizedText(o.Specialite),
		Etablissement:    kernel.NewOptionalLocalizedText(o.Etablissement),
		ImageURL:         o.ImageURL,
		DatePublication:  o.DatePublication,
		DepotAvant:       o.DepotAvant,
		CandidatesNumber: o.CandidatesNumber,
		Owner:            o.Owner.String(),
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

const selectColumns = `
	id, title, description, tag, city, department,
	grade, organisme, specialite, etablissement,
	image_url, date_publication, depot_avant, candidates_number,
	owner_id, created_at, updated_at`

// ============================================================================
// Repository Implementation
// ============================================================================

func (r *PostgresJobOfferRepository) Create(ctx context.Context, offer *joboffer.JobOffer) error {
	query := `
		INSERT INTO job_offers (` + selectColumns + `
		) VALUES (
			:id, :title, :description, :tag, :city, :department,
			:grade, :organisme, :specialite, :etablissement,
			:image_url, :date_publication, :depot_avant, :candidates_number,
			:owner_id, :created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, fromEntity(offer))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("invalid owner_id %s: %w", offer.Owner, err)
		}
		return fmt.Errorf("failed to create job offer: %w", err)
	}
	return nil
}

func (r *PostgresJobOfferRepository) Update(ctx context.Context, offer *joboffer.JobOffer) error {
	query := `
		UPDATE job_offers SET
			title = :title,
			description = :description,
			tag = :tag,
			city = :city,
			department = :department,
			grade = :grade,
			organisme = :organisme,
			specialite = :specialite,
			etablissement = :etablissement,
			image_url = :image_url,
			date_publication = :date_publication,
			depot_avant = :depot_avant,
			candidates_number = :candidates_number,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, fromEntity(offer))
	if err != nil {
		return fmt.Errorf("failed to update job offer: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return joboffer.ErrJobOfferNotFound().WithDetail("id", offer.ID.String())
	}
	return nil
}

func (r *PostgresJobOfferRepository) GetByID(ctx context.Context, id kernel.JobOfferID) (*joboffer.JobOffer, error) {
	query := `SELECT ` + selectColumns + ` FROM job_offers WHERE id = $1`

	var model jobOfferModel
	if err := r.db.GetContext(ctx, &model, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, joboffer.ErrJobOfferNotFound().WithDetail("id", id.String())
		}
		return nil, fmt.Errorf("failed to get job offer by id: %w", err)
	}
	offer := model.toEntity()
	return &offer, nil
}

func (r *PostgresJobOfferRepository) Delete(ctx context.Context, id kernel.JobOfferID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM job_offers WHERE id = $1`, id.String())
	if err != nil {
		return deleteError(id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return joboffer.ErrJobOfferNotFound().WithDetail("id", id.String())
	}
	return nil
}

// deleteError maps a foreign key violation to ErrJobOfferInUse
func deleteError(id kernel.JobOfferID, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		return joboffer.ErrJobOfferInUse().
			WithDetail("id", id.String()).
			WithDetail("constraint", pqErr.Constraint)
	}
	return fmt.Errorf("failed to delete job offer: %w", err)
}

func (r *PostgresJobOfferRepository) ListAll(ctx context.Context) ([]joboffer.JobOffer, error) {
	query := `SELECT ` + selectColumns + ` FROM job_offers ORDER BY created_at DESC`

	var models []jobOfferModel
	if err := r.db.SelectContext(ctx, &models, query); err != nil {
		return nil, fmt.Errorf("failed to list job offers: %w", err)
	}
	return toEntities(models), nil
}

func (r *PostgresJobOfferRepository) Search(ctx context.Context, q joboffer.AdminListQuery) (*kernel.Paginated[joboffer.JobOffer], error) {
	whereClause, args := buildAdminFilter(q)
	argCount := len(args) + 1

	var total int
	countQuery := "SELECT COUNT(*) FROM job_offers " + whereClause
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count job offers: %w", err)
	}

	pagination := q.Pagination()
	query := fmt.Sprintf(`
		SELECT %s
		FROM job_offers
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, selectColumns, whereClause, argCount, argCount+1)
	args = append(args, pagination.PageSize, pagination.Offset())

	var models []jobOfferModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search job offers: %w", err)
	}

	items := toEntities(models)
	return &kernel.Paginated[joboffer.JobOffer]{
		Items: items,
		Page:  kernel.NewPage(pagination, total),
		Empty: len(items) == 0,
	}, nil
}

func (r *PostgresJobOfferRepository) Exists(ctx context.Context, id kernel.JobOfferID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM job_offers WHERE id = $1)`, id.String())
	if err != nil {
		return false, fmt.Errorf("failed to check job offer existence: %w", err)
	}
	return exists, nil
}

func toEntities(models []jobOfferModel) []joboffer.JobOffer {
	entities := make([]joboffer.JobOffer, 0, len(models))
	for i := range models {
		entities = append(entities, models[i].toEntity())
	}
	return entities
}

// buildAdminFilter ANDs the admin filters; each text filter matches any locale
func buildAdminFilter(q joboffer.AdminListQuery) (string, []any) {
	var conditions []string
	var args []any

	localized := func(column, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		args = append(args, "%"+escapeLike(strings.TrimSpace(value))+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(%[1]s->>'fr' ILIKE $%[2]d OR %[1]s->>'en' ILIKE $%[2]d OR %[1]s->>'ar' ILIKE $%[2]d)",
			column, n))
	}

	localized("title", q.Title)
	if q.Date != "" {
		args = append(args, q.Date)
		conditions = append(conditions, fmt.Sprintf("date_publication = $%d", len(args)))
	}
	localized("city", q.City)
	localized("department", q.Department)

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
