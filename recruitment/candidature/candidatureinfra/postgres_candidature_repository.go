package candidatureinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
	"github.com/0Omaaar/iRecruitApp/pkg/logx"
	"github.com/0Omaaar/iRecruitApp/recruitment/candidature"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

type PostgresCandidatureRepository struct {
	db *sqlx.DB
}

func NewPostgresCandidatureRepository(db *sqlx.DB) *PostgresCandidatureRepository {
	return &PostgresCandidatureRepository{db: db}
}

const selectColumns = `id, user_id, personal_information, professional_information, created_at, updated_at`

type candidatureModel struct {
	ID                      string         `db:"id"`
	UserID                  string         `db:"user_id"`
	PersonalInformation     types.JSONText `db:"personal_information"`
	ProfessionalInformation types.JSONText `db:"professional_information"`
	CreatedAt               time.Time      `db:"created_at"`
	UpdatedAt               time.Time      `db:"updated_at"`
}

func (m candidatureModel) toEntity() (candidature.Candidature, error) {
	c := candidature.Candidature{
		ID:        kernel.CandidatureID(m.ID),
		UserID:    kernel.UserID(m.UserID),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if err := decode(m.PersonalInformation, &c.PersonalInformation); err != nil {
		return c, candidature.ErrMalformedDossier().WithDetail("id", m.ID).WithCause(err)
	}
	if err := decode(m.ProfessionalInformation, &c.ProfessionalInformation); err != nil {
		return c, candidature.ErrMalformedDossier().WithDetail("id", m.ID).WithCause(err)
	}
	return c, nil
}

// decode tolerates NULL and empty columns
func decode(raw types.JSONText, dst any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func (r *PostgresCandidatureRepository) FindByUserID(ctx context.Context, userID kernel.UserID) (*candidature.Candidature, error) {
	var m candidatureModel
	err := r.db.GetContext(ctx, &m, `SELECT `+selectColumns+` FROM candidatures WHERE user_id = $1`, userID.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, candidature.ErrCandidatureNotFound().WithDetail("user_id", userID.String())
		}
		return nil, fmt.Errorf("failed to get candidature: %w", err)
	}
	c, err := m.toEntity()
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresCandidatureRepository) ListByUserIDs(ctx context.Context, userIDs []kernel.UserID) ([]candidature.Candidature, error) {
	if len(userIDs) == 0 {
		return []candidature.Candidature{}, nil
	}

	ids := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		ids = append(ids, id.String())
	}

	var models []candidatureModel
	err := r.db.SelectContext(ctx, &models,
		`SELECT `+selectColumns+` FROM candidatures WHERE user_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list candidatures: %w", err)
	}

	return decodeMany(models), nil
}

// decodeMany drops dossiers that no longer fit the typed model; their
// applications are then projected with the empty-dossier defaults.
func decodeMany(models []candidatureModel) []candidature.Candidature {
	out := make([]candidature.Candidature, 0, len(models))
	for _, m := range models {
		c, err := m.toEntity()
		if err != nil {
			logx.Warn("skipping malformed dossier", "candidature_id", m.ID, "user_id", m.UserID, "error", err)
			continue
		}
		out = append(out, c)
	}
	return out
}
