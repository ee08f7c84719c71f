package services

import (
	"context"
	"strconv"

	"commuteai/internal/domain"
	"commuteai/internal/domain/models"
	"commuteai/internal/repositories"
	"commuteai/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

const (
	minUsernameLen = 3
	minPasswordLen = 4
	// bcrypt rejects longer inputs
	maxPasswordBytes = 72
)

// UserService owns account creation and credential checks.
type UserService struct {
	Users      repositories.UserRepository
	BcryptCost int
	RequestID  string
}

func (s UserService) cost() int {
	if s.BcryptCost == 0 {
		return bcrypt.DefaultCost
	}
	return s.BcryptCost
}

// Register validates and stores a new user with a bcrypt password hash.
func (s UserService) Register(ctx context.Context, username, password string) (models.User, error) {
	username = utils.TrimOrEmpty(username)
	if len(username) < minUsernameLen {
		return models.User{}, domain.ValidationError{Field: "username", Msg: "must be at least 3 characters"}
	}
	if len(password) < minPasswordLen {
		return models.User{}, domain.ValidationError{Field: "password", Msg: "must be at least 4 characters"}
	}
	if len(password) > maxPasswordBytes {
		return models.User{}, domain.ValidationError{Field: "password", Msg: "must be at most 72 bytes"}
	}

	if _, err := s.Users.GetByUsername(ctx, username); err == nil {
		return models.User{}, domain.ConflictError{Resource: "user", Msg: "username already registered"}
	} else if !domain.IsNotFound(err) {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost())
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "failed to hash password", Err: err}
	}

	u, err := s.Users.Create(ctx, username, string(hash))
	if err != nil {
		return models.User{}, err
	}
	utils.LogEvent(s.RequestID, "user", "register", "user_id="+strconv.FormatInt(u.ID, 10))
	return u, nil
}

// Authenticate returns the user when the password matches. Unknown users and
// wrong passwords are indistinguishable to the caller.
func (s UserService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	u, err := s.Users.GetByUsername(ctx, utils.TrimOrEmpty(username))
	if err != nil {
		if domain.IsNotFound(err) {
			return models.User{}, domain.UnauthorizedError{Msg: "incorrect username or password"}
		}
		return models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)); err != nil {
		return models.User{}, domain.UnauthorizedError{Msg: "incorrect username or password"}
	}
	utils.LogEvent(s.RequestID, "user", "login", "user_id="+strconv.FormatInt(u.ID, 10))
	return u, nil
}

func (s UserService) Get(ctx context.Context, id int64) (models.User, error) {
	return s.Users.GetByID(ctx, id)
}
