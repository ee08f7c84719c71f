package handlers

import (
	"fmt"
	"net/http"

	"commuteai/internal/domain/models"
	"commuteai/internal/services"

	"github.com/gin-gonic/gin"
)

type insightRequest struct {
	Itinerary       *models.Itinerary `json:"itinerary"`
	UserPreferences []string          `json:"user_preferences"`
}

// insightPreferences returns the request prompts, or the user's stored global
// prompts when the request sent none.
func (h *Handler) insightPreferences(c *gin.Context, userID int64, sent []string) ([]string, bool) {
	if sent != nil {
		return sent, true
	}
	stored, err := h.preferenceService(c).Prompts(c.Request.Context(), userID)
	if err != nil {
		RespondDomainError(c, err)
		return nil, false
	}
	if len(stored) == 0 {
		return nil, true
	}
	return stored, true
}

// enrichFromRequest binds the body and enriches the itinerary in place.
func (h *Handler) enrichFromRequest(c *gin.Context) (*models.Itinerary, bool) {
	var req insightRequest
	if !BindJSONOrError(c, &req) {
		return nil, false
	}
	userID, ok := currentUserID(c)
	if !ok {
		return nil, false
	}

	prefs, ok := h.insightPreferences(c, userID, req.UserPreferences)
	if !ok {
		return nil, false
	}

	if _, err := h.insightService(c).Enrich(c.Request.Context(), req.Itinerary, prefs); err != nil {
		RespondDomainError(c, err)
		return nil, false
	}
	return req.Itinerary, true
}

// POST /api/v1/insights/itinerary
func (h *Handler) ItineraryInsight(c *gin.Context) {
	it, ok := h.enrichFromRequest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, it)
}

// POST /api/v1/insights/itinerary/pdf
func (h *Handler) ItineraryInsightPDF(c *gin.Context) {
	it, ok := h.enrichFromRequest(c)
	if !ok {
		return
	}
	pdf, filename, err := services.ItinerarySheet{}.Render(it)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// POST /api/v1/insights/itineraries
//
// Batch form: every itinerary is enriched on the same bounded pool as route
// search, and one insight entry is returned per itinerary in request order.
func (h *Handler) ItinerariesInsights(c *gin.Context) {
	var req models.ItinerariesInsightRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	prefs, ok := h.insightPreferences(c, userID, req.UserPreferences)
	if !ok {
		return
	}

	insights, err := h.routesService(c).EnrichBatch(c.Request.Context(), req.Itineraries, prefs)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ItinerariesInsightResponse{ItineraryInsights: insights})
}
