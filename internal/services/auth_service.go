package services

import (
	"errors"
	"strconv"
	"time"

	"commuteai/internal/domain"
	"commuteai/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTypeBearer = "bearer"

// AuthService issues and verifies HS256 access tokens.
type AuthService struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func (a AuthService) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// IssueToken signs a token whose subject is the user id.
func (a AuthService) IssueToken(userID int64) (models.Token, error) {
	if len(a.Secret) == 0 {
		return models.Token{}, domain.InternalError{Msg: "token secret not configured"}
	}
	ttl := a.TTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	now := a.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	})
	signed, err := token.SignedString(a.Secret)
	if err != nil {
		return models.Token{}, domain.InternalError{Msg: "failed to sign token", Err: err}
	}
	return models.Token{AccessToken: signed, TokenType: tokenTypeBearer}, nil
}

// ParseToken validates the signature and expiry and returns the user id.
func (a AuthService) ParseToken(raw string) (int64, error) {
	if len(a.Secret) == 0 {
		return 0, domain.InternalError{Msg: "token secret not configured"}
	}
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return a.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now), jwt.WithExpirationRequired())
	if err != nil {
		return 0, domain.UnauthorizedError{Msg: "could not validate credentials", Err: err}
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return 0, domain.UnauthorizedError{Msg: "could not validate credentials", Err: errors.New("missing subject")}
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.UnauthorizedError{Msg: "could not validate credentials", Err: errors.New("invalid subject")}
	}
	return id, nil
}
