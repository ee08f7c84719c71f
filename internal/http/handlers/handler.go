// Package handlers holds the gin handlers of the public API.
package handlers

import (
	"commuteai/internal/http/middleware"
	"commuteai/internal/repositories"
	"commuteai/internal/services"

	"github.com/gin-gonic/gin"
)

// Handler carries the long-lived dependencies. Services are built per
// request so each one logs with its request id.
type Handler struct {
	Users            repositories.UserRepository
	Preferences      repositories.PreferenceRepository
	RoutePreferences repositories.RoutePreferenceRepository

	Auth     services.AuthService
	Insights services.InsightFetcher
	Planner  services.RoutePlanner
	Health   services.HealthService

	EnrichConcurrency int
	BcryptCost        int
}

func (h *Handler) userService(c *gin.Context) services.UserService {
	return services.UserService{Users: h.Users, BcryptCost: h.BcryptCost, RequestID: middleware.GetRequestID(c)}
}

func (h *Handler) preferenceService(c *gin.Context) services.PreferenceService {
	return services.PreferenceService{Repo: h.Preferences, RequestID: middleware.GetRequestID(c)}
}

func (h *Handler) routePreferenceService(c *gin.Context) services.RoutePreferenceService {
	return services.RoutePreferenceService{Repo: h.RoutePreferences, RequestID: middleware.GetRequestID(c)}
}

func (h *Handler) insightService(c *gin.Context) services.InsightService {
	return services.InsightService{Client: h.Insights, RequestID: middleware.GetRequestID(c)}
}

func (h *Handler) routesService(c *gin.Context) services.RoutesService {
	return services.RoutesService{
		Planner:     h.Planner,
		Insights:    h.insightService(c),
		Concurrency: h.EnrichConcurrency,
		RequestID:   middleware.GetRequestID(c),
	}
}

func (h *Handler) resolver() services.PreferenceResolver {
	return services.PreferenceResolver{Global: h.Preferences, Routes: h.RoutePreferences}
}

// UserLoader adapts the user service for the auth middleware.
func (h *Handler) UserLoader() middleware.UserLoader {
	return services.UserService{Users: h.Users}
}
