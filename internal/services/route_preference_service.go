package services

import (
	"context"
	"fmt"

	"commuteai/internal/domain"
	"commuteai/internal/domain/models"
	"commuteai/internal/repositories"
	"commuteai/internal/utils"
)

// RoutePreferenceService manages prompts bound to an origin/destination pair.
type RoutePreferenceService struct {
	Repo      repositories.RoutePreferenceRepository
	RequestID string
}

func (s RoutePreferenceService) List(ctx context.Context, userID int64) ([]models.RoutePreference, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s RoutePreferenceService) Create(ctx context.Context, userID int64, in models.RoutePreferenceInput) (models.RoutePreference, error) {
	in.Prompt = utils.TrimOrEmpty(in.Prompt)
	if in.Prompt == "" {
		return models.RoutePreference{}, domain.ValidationError{Field: "prompt", Msg: "prompt cannot be empty"}
	}
	from := models.Coordinates{Latitude: in.FromLatitude, Longitude: in.FromLongitude}
	if err := from.Validate(); err != nil {
		return models.RoutePreference{}, domain.ValidationError{Field: "from", Msg: err.Error(), Err: err}
	}
	to := models.Coordinates{Latitude: in.ToLatitude, Longitude: in.ToLongitude}
	if err := to.Validate(); err != nil {
		return models.RoutePreference{}, domain.ValidationError{Field: "to", Msg: err.Error(), Err: err}
	}

	p, err := s.Repo.Create(ctx, userID, in)
	if err != nil {
		return models.RoutePreference{}, err
	}
	utils.LogEvent(s.RequestID, "route_preference", "create", fmt.Sprintf("user_id=%d id=%d", userID, p.ID))
	return p, nil
}

func (s RoutePreferenceService) Delete(ctx context.Context, userID, id int64) error {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.UserID != userID {
		return domain.ForbiddenError{Msg: "not authorized to delete this route preference"}
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "route_preference", "delete", fmt.Sprintf("user_id=%d id=%d", userID, id))
	return nil
}
