package middleware

import (
	"context"
	"net/http"
	"strings"

	"commuteai/internal/domain"
	"commuteai/internal/domain/models"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey = "user_id"
	userKey   = "user"
)

type TokenParser interface {
	ParseToken(raw string) (int64, error)
}

type UserLoader interface {
	Get(ctx context.Context, id int64) (models.User, error)
}

// Auth resolves the bearer token into the current user.
type Auth struct {
	Tokens TokenParser
	Users  UserLoader
}

// Required rejects requests without a valid bearer token: 401 when absent,
// 403 when invalid, 404 when the user no longer exists.
func (a Auth) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			c.Header("WWW-Authenticate", "Bearer")
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "not authenticated")
			return
		}
		if a.authenticate(c, raw) {
			c.Next()
		}
	}
}

// Optional attaches the user when a token is sent and lets anonymous
// requests through. A token that is sent but invalid is still rejected.
func (a Auth) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}
		if a.authenticate(c, raw) {
			c.Next()
		}
	}
}

func (a Auth) authenticate(c *gin.Context, raw string) bool {
	id, err := a.Tokens.ParseToken(raw)
	if err != nil {
		if domain.IsUnauthorized(err) {
			c.Header("WWW-Authenticate", "Bearer")
			abortJSON(c, http.StatusForbidden, "forbidden", "could not validate credentials")
			return false
		}
		abortJSON(c, http.StatusInternalServerError, "internal_error", "internal server error")
		return false
	}

	user, err := a.Users.Get(c.Request.Context(), id)
	if err != nil {
		if domain.IsNotFound(err) {
			abortJSON(c, http.StatusNotFound, "not_found", "user not found")
			return false
		}
		abortJSON(c, http.StatusInternalServerError, "internal_error", "internal server error")
		return false
	}

	c.Set(userIDKey, user.ID)
	c.Set(userKey, user)
	return true
}

func bearerToken(c *gin.Context) (string, bool) {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if h == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetUserID returns the authenticated user id.
func GetUserID(c *gin.Context) (int64, bool) {
	if c == nil {
		return 0, false
	}
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok && id > 0
}

func GetUser(c *gin.Context) (models.User, bool) {
	if c == nil {
		return models.User{}, false
	}
	v, ok := c.Get(userKey)
	if !ok {
		return models.User{}, false
	}
	u, ok := v.(models.User)
	return u, ok
}

func abortJSON(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      message,
		"code":       code,
		"request_id": GetRequestID(c),
		"message":    message,
	})
}
