package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type credentials struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// POST /api/v1/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req credentials
	if !BindJSONOrError(c, &req) {
		return
	}
	u, err := h.userService(c).Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	tok, err := h.Auth.IssueToken(u.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, tok)
}

// POST /api/v1/auth/login accepts JSON or form-encoded credentials.
func (h *Handler) Login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid payload", err.Error())
		return
	}
	u, err := h.userService(c).Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	tok, err := h.Auth.IssueToken(u.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, tok)
}
