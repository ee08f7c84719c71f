package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"commuteai/internal/domain"
	"commuteai/internal/domain/models"
)

// UserRepository reads and writes the users table.
type UserRepository struct {
	DB *sql.DB
}

const userColumns = `id, username, hashed_password, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var (
		u         models.User
		updatedAt sql.NullTime
	)
	if err := row.Scan(&u.ID, &u.Username, &u.HashedPassword, &u.CreatedAt, &updatedAt); err != nil {
		return models.User{}, err
	}
	u.UpdatedAt = nullTimePtr(updatedAt)
	return u, nil
}

func (r UserRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	db, err := pickDB(r.DB)
	if err != nil {
		return models.User{}, err
	}
	u, err := scanUser(db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
	}
	return u, err
}

func (r UserRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	db, err := pickDB(r.DB)
	if err != nil {
		return models.User{}, err
	}
	u, err := scanUser(db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ? LIMIT 1`, username))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
	}
	return u, err
}

// Create inserts a user. A taken username is a ConflictError.
func (r UserRepository) Create(ctx context.Context, username, hashedPassword string) (models.User, error) {
	db, err := pickDB(r.DB)
	if err != nil {
		return models.User{}, err
	}
	now := time.Now().UTC()
	res, err := db.ExecContext(ctx,
		`INSERT INTO users (username, hashed_password, created_at) VALUES (?, ?, ?)`,
		username, hashedPassword, now)
	if err != nil {
		if isDuplicate(err) {
			return models.User{}, domain.ConflictError{Resource: "user", Msg: "username already registered", Err: err}
		}
		return models.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	return models.User{ID: id, Username: username, HashedPassword: hashedPassword, CreatedAt: now}, nil
}
