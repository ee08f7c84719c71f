package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"commuteai/internal/domain"
	"commuteai/internal/domain/models"
)

// PreferenceRepository stores global preferences.
type PreferenceRepository struct {
	DB *sql.DB
}

func scanGlobalPreference(row interface{ Scan(...any) error }) (models.GlobalPreference, error) {
	var (
		p         models.GlobalPreference
		updatedAt sql.NullTime
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.Prompt, &p.CreatedAt, &updatedAt); err != nil {
		return models.GlobalPreference{}, err
	}
	p.UpdatedAt = nullTimePtr(updatedAt)
	return p, nil
}

// ListByUser returns the user's preferences oldest first.
func (r PreferenceRepository) ListByUser(ctx context.Context, userID int64) ([]models.GlobalPreference, error) {
	db, err := pickDB(r.DB)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `
		SELECT id, user_id, prompt, created_at, updated_at
		FROM global_preferences
		WHERE user_id = ?
		ORDER BY id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.GlobalPreference{}
	for rows.Next() {
		p, err := scanGlobalPreference(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PreferenceRepository) GetByID(ctx context.Context, id int64) (models.GlobalPreference, error) {
	db, err := pickDB(r.DB)
	if err != nil {
		return models.GlobalPreference{}, err
	}
	p, err := scanGlobalPreference(db.QueryRowContext(ctx, `
		SELECT id, user_id, prompt, created_at, updated_at
		FROM global_preferences WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.GlobalPreference{}, domain.NotFoundError{Resource: "preference", Err: err}
	}
	return p, err
}

func (r PreferenceRepository) Create(ctx context.Context, userID int64, prompt string) (models.GlobalPreference, error) {
	db, err := pickDB(r.DB)
	if err != nil {
		return models.GlobalPreference{}, err
	}
	now := time.Now().UTC()
	res, err := db.ExecContext(ctx,
		`INSERT INTO global_preferences (user_id, prompt, created_at) VALUES (?, ?, ?)`,
		userID, prompt, now)
	if err != nil {
		return models.GlobalPreference{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.GlobalPreference{}, err
	}
	return models.GlobalPreference{ID: id, UserID: userID, Prompt: prompt, CreatedAt: now}, nil
}

func (r PreferenceRepository) Delete(ctx context.Context, id int64) error {
	db, err := pickDB(r.DB)
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM global_preferences WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "preference", Err: sql.ErrNoRows}
	}
	return nil
}
