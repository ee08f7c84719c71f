package services

import (
	"context"

	"commuteai/internal/domain/models"
	"commuteai/internal/repositories"
	"commuteai/internal/utils"
)

// RouteMatchRadiusMeters is how close a stored route preference's endpoints
// must be to a search for its prompt to apply.
const RouteMatchRadiusMeters = 500.0

// PreferenceResolver collects the prompt strings sent along with an
// insight request.
type PreferenceResolver struct {
	Global       repositories.PreferenceRepository
	Routes       repositories.RoutePreferenceRepository
	RadiusMeters float64
}

func (r PreferenceResolver) radius() float64 {
	if r.RadiusMeters <= 0 {
		return RouteMatchRadiusMeters
	}
	return r.RadiusMeters
}

// Resolve returns all global prompts followed by the prompts of route
// preferences matching origin and destination. With no endpoints only global
// prompts are returned. A user without preferences yields nil so the field is
// omitted from the AI request.
func (r PreferenceResolver) Resolve(ctx context.Context, userID int64, origin, destination *models.Coordinates) ([]string, error) {
	global, err := r.Global.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, p := range global {
		out = append(out, p.Prompt)
	}

	if origin == nil || destination == nil {
		return out, nil
	}

	routes, err := r.Routes.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, p := range routes {
		if matchesRoute(p, *origin, *destination, r.radius()) {
			out = append(out, p.Prompt)
		}
	}
	return out, nil
}

func matchesRoute(p models.RoutePreference, origin, destination models.Coordinates, radius float64) bool {
	fromDist := utils.HaversineMeters(p.FromLatitude, p.FromLongitude, origin.Latitude, origin.Longitude)
	if fromDist > radius {
		return false
	}
	toDist := utils.HaversineMeters(p.ToLatitude, p.ToLongitude, destination.Latitude, destination.Longitude)
	return toDist <= radius
}

// CleanPrompts trims request-supplied prompts and drops blank ones. A nil
// input stays nil so callers can tell "not sent" from "sent empty".
func CleanPrompts(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, p := range in {
		if p = utils.TrimOrEmpty(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
