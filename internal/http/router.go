package api

import (
	stdhttp "net/http"

	h "commuteai/internal/http/handlers"
	"commuteai/internal/http/middleware"
	"commuteai/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RouterConfig is the HTTP-facing part of the environment.
type RouterConfig struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

func NewRouter(cfg RouterConfig, handler *h.Handler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.Metrics(), middleware.CORS(cfg.AllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warn().Err(err).Msg("failed to set trusted proxies")
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	auth := middleware.Auth{Tokens: handler.Auth, Users: handler.UserLoader()}
	// guard runs ahead of auth and sees only the client IP, so rejected
	// tokens are counted too; limit runs after auth and keys by user.
	pass := func(c *gin.Context) { c.Next() }
	var guard, limit gin.HandlerFunc = pass, pass
	if cfg.RateLimitRPS > 0 {
		guard = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Handler()
		limit = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Handler()
	}

	r.GET("/", h.Root)
	r.GET("/health", handler.HealthCheck)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api/v1")
	{
		api.GET("/health", handler.HealthCheck)

		authGroup := api.Group("/auth", guard)
		authGroup.POST("/register", handler.Register)
		authGroup.POST("/login", handler.Login)

		users := api.Group("/users", guard, auth.Required(), limit)
		users.GET("/me", handler.Me)
		users.GET("/preferences", handler.ListPreferences)
		users.POST("/preferences", handler.CreatePreference)
		users.DELETE("/preferences/:id", handler.DeletePreference)
		users.GET("/route-preferences", handler.ListRoutePreferences)
		users.POST("/route-preferences", handler.CreateRoutePreference)
		users.DELETE("/route-preferences/:id", handler.DeleteRoutePreference)

		routes := api.Group("/routes", guard, auth.Optional(), limit)
		routes.POST("/search", handler.SearchRoutes)

		insights := api.Group("/insights", guard, auth.Required(), limit)
		insights.POST("/itinerary", handler.ItineraryInsight)
		insights.POST("/itinerary/pdf", handler.ItineraryInsightPDF)
		insights.POST("/itineraries", handler.ItinerariesInsights)
		// misspelled path kept for older clients
		insights.POST("/iteneraries", handler.ItinerariesInsights)
	}

	return r
}
