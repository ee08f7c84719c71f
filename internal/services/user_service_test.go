package services

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"commuteai/internal/domain"
	"commuteai/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"
)

var userCols = []string{"id", "username", "hashed_password", "created_at", "updated_at"}

func newUserService(t *testing.T) (UserService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return UserService{Users: repositories.UserRepository{DB: db}, BcryptCost: bcrypt.MinCost}, mock
}

func TestUserServiceRegister(t *testing.T) {
	svc, mock := newUserService(t)
	mock.ExpectQuery("FROM users WHERE username = \\?").WithArgs("alice").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO users").
		WithArgs("alice", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	u, err := svc.Register(context.Background(), "  alice ", "secret")
	if err != nil {
		t.Fatalf("register error: %v", err)
	}
	if u.ID != 1 || u.Username != "alice" {
		t.Fatalf("unexpected user %+v", u)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte("secret")) != nil {
		t.Fatalf("password was not hashed with bcrypt")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserServiceRegisterValidation(t *testing.T) {
	svc, _ := newUserService(t)
	if _, err := svc.Register(context.Background(), "ab", "secret"); !domain.IsValidation(err) {
		t.Fatalf("short username should fail validation, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "alice", "abc"); !domain.IsValidation(err) {
		t.Fatalf("short password should fail validation, got %v", err)
	}
}

func TestUserServiceRegisterPasswordTooLong(t *testing.T) {
	svc, mock := newUserService(t)
	_, err := svc.Register(context.Background(), "alice", strings.Repeat("p", 80))
	if !domain.IsValidation(err) {
		t.Fatalf("80-byte password should fail validation, got %v", err)
	}
	if domain.IsInternal(err) {
		t.Fatalf("oversized password must not surface as internal error")
	}

	// 72 bytes is the largest input bcrypt accepts
	mock.ExpectQuery("FROM users WHERE username = \\?").WithArgs("alice").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO users").
		WithArgs("alice", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	if _, err := svc.Register(context.Background(), "alice", strings.Repeat("p", 72)); err != nil {
		t.Fatalf("72-byte password should register, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserServiceRegisterTaken(t *testing.T) {
	svc, mock := newUserService(t)
	mock.ExpectQuery("FROM users WHERE username = \\?").WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "alice", "h", time.Now(), nil))

	if _, err := svc.Register(context.Background(), "alice", "secret"); !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUserServiceAuthenticate(t *testing.T) {
	svc, mock := newUserService(t)
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	mock.ExpectQuery("FROM users WHERE username = \\?").WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(4, "alice", string(hash), time.Now(), nil))
	mock.ExpectQuery("FROM users WHERE username = \\?").WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(4, "alice", string(hash), time.Now(), nil))
	mock.ExpectQuery("FROM users WHERE username = \\?").WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)

	u, err := svc.Authenticate(context.Background(), "alice", "secret")
	if err != nil || u.ID != 4 {
		t.Fatalf("expected user 4, got %+v err=%v", u, err)
	}
	if _, err := svc.Authenticate(context.Background(), "alice", "wrong"); !domain.IsUnauthorized(err) {
		t.Fatalf("wrong password should be unauthorized, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "nobody", "secret"); !domain.IsUnauthorized(err) {
		t.Fatalf("unknown user should be unauthorized, got %v", err)
	}
}
