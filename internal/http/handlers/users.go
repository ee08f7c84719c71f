package handlers

import (
	"net/http"

	"commuteai/internal/domain/models"
	"commuteai/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// GET /api/v1/users/me
func (h *Handler) Me(c *gin.Context) {
	u, ok := middleware.GetUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "not authenticated", nil)
		return
	}
	c.JSON(http.StatusOK, u.ToPublic())
}

type promptRequest struct {
	Prompt string `json:"prompt"`
}

// GET /api/v1/users/preferences
func (h *Handler) ListPreferences(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	prefs, err := h.preferenceService(c).List(c.Request.Context(), userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// POST /api/v1/users/preferences
func (h *Handler) CreatePreference(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req promptRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	p, err := h.preferenceService(c).Create(c.Request.Context(), userID, req.Prompt)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// DELETE /api/v1/users/preferences/:id
func (h *Handler) DeletePreference(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.preferenceService(c).Delete(c.Request.Context(), userID, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/v1/users/route-preferences
func (h *Handler) ListRoutePreferences(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	prefs, err := h.routePreferenceService(c).List(c.Request.Context(), userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// POST /api/v1/users/route-preferences
func (h *Handler) CreateRoutePreference(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.RoutePreferenceInput
	if !BindJSONOrError(c, &req) {
		return
	}
	p, err := h.routePreferenceService(c).Create(c.Request.Context(), userID, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// DELETE /api/v1/users/route-preferences/:id
func (h *Handler) DeleteRoutePreference(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.routePreferenceService(c).Delete(c.Request.Context(), userID, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
