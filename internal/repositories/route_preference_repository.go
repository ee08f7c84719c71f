package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"commuteai/internal/domain"
	"commuteai/internal/domain/models"
)

// RoutePreferenceRepository stores prompts bound to an origin/destination pair.
type RoutePreferenceRepository struct {
	DB *sql.DB
}

const routePreferenceColumns = `id, user_id, prompt, from_latitude, from_longitude, to_latitude, to_longitude, created_at, updated_at`

func scanRoutePreference(row interface{ Scan(...any) error }) (models.RoutePreference, error) {
	var (
		p         models.RoutePreference
		updatedAt sql.NullTime
	)
	err := row.Scan(&p.ID, &p.UserID, &p.Prompt,
		&p.FromLatitude, &p.FromLongitude, &p.ToLatitude, &p.ToLongitude,
		&p.CreatedAt, &updatedAt)
	if err != nil {
		return models.RoutePreference{}, err
	}
	p.UpdatedAt = nullTimePtr(updatedAt)
	return p, nil
}

func (r RoutePreferenceRepository) ListByUser(ctx context.Context, userID int64) ([]models.RoutePreference, error) {
	db, err := pickDB(r.DB)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx,
		`SELECT `+routePreferenceColumns+` FROM route_preferences WHERE user_id = ? ORDER BY id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.RoutePreference{}
	for rows.Next() {
		p, err := scanRoutePreference(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r RoutePreferenceRepository) GetByID(ctx context.Context, id int64) (models.RoutePreference, error) {
	db, err := pickDB(r.DB)
	if err != nil {
		return models.RoutePreference{}, err
	}
	p, err := scanRoutePreference(db.QueryRowContext(ctx,
		`SELECT `+routePreferenceColumns+` FROM route_preferences WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.RoutePreference{}, domain.NotFoundError{Resource: "route preference", Err: err}
	}
	return p, err
}

func (r RoutePreferenceRepository) Create(ctx context.Context, userID int64, in models.RoutePreferenceInput) (models.RoutePreference, error) {
	db, err := pickDB(r.DB)
	if err != nil {
		return models.RoutePreference{}, err
	}
	now := time.Now().UTC()
	res, err := db.ExecContext(ctx, `
		INSERT INTO route_preferences
			(user_id, prompt, from_latitude, from_longitude, to_latitude, to_longitude, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, in.Prompt, in.FromLatitude, in.FromLongitude, in.ToLatitude, in.ToLongitude, now)
	if err != nil {
		return models.RoutePreference{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.RoutePreference{}, err
	}
	return models.RoutePreference{
		ID:            id,
		UserID:        userID,
		Prompt:        in.Prompt,
		FromLatitude:  in.FromLatitude,
		FromLongitude: in.FromLongitude,
		ToLatitude:    in.ToLatitude,
		ToLongitude:   in.ToLongitude,
		CreatedAt:     now,
	}, nil
}

func (r RoutePreferenceRepository) Delete(ctx context.Context, id int64) error {
	db, err := pickDB(r.DB)
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM route_preferences WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "route preference", Err: sql.ErrNoRows}
	}
	return nil
}
