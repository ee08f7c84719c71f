package handlers

import (
	"net/http"

	"commuteai/internal/domain/models"
	"commuteai/internal/http/middleware"
	"commuteai/internal/services"
	"commuteai/internal/utils"

	"github.com/gin-gonic/gin"
)

// POST /api/v1/routes/search
//
// Preferences sent in the body are used as is, for anonymous callers too.
// Otherwise a signed-in user's global prompts and matching route prompts are
// sent along, and anonymous searches go without.
func (h *Handler) SearchRoutes(c *gin.Context) {
	var req models.RouteSearchRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	prefs := services.CleanPrompts(req.Preferences)
	if userID, ok := middleware.GetUserID(c); ok && prefs == nil {
		resolved, err := h.resolver().Resolve(c.Request.Context(), userID, &req.Origin, &req.Destination)
		if err != nil {
			utils.LogWarn(middleware.GetRequestID(c), "routes", "resolve_preferences", err, "continuing without preferences")
		} else {
			prefs = resolved
		}
	}

	resp, err := h.routesService(c).Search(c.Request.Context(), req, prefs)
	if err != nil {
		respondRoutingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
