package services

import (
	"context"
	"fmt"

	"commuteai/internal/domain"
	"commuteai/internal/domain/models"
	"commuteai/internal/repositories"
	"commuteai/internal/utils"
)

// PreferenceService manages a user's global prompts.
type PreferenceService struct {
	Repo      repositories.PreferenceRepository
	RequestID string
}

func (s PreferenceService) List(ctx context.Context, userID int64) ([]models.GlobalPreference, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s PreferenceService) Create(ctx context.Context, userID int64, prompt string) (models.GlobalPreference, error) {
	prompt = utils.TrimOrEmpty(prompt)
	if prompt == "" {
		return models.GlobalPreference{}, domain.ValidationError{Field: "prompt", Msg: "prompt cannot be empty"}
	}
	p, err := s.Repo.Create(ctx, userID, prompt)
	if err != nil {
		return models.GlobalPreference{}, err
	}
	utils.LogEvent(s.RequestID, "preference", "create", fmt.Sprintf("user_id=%d id=%d", userID, p.ID))
	return p, nil
}

// Delete removes a preference owned by userID.
func (s PreferenceService) Delete(ctx context.Context, userID, id int64) error {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.UserID != userID {
		return domain.ForbiddenError{Msg: "not authorized to delete this preference"}
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "preference", "delete", fmt.Sprintf("user_id=%d id=%d", userID, id))
	return nil
}

// Prompts returns the user's global prompt strings.
func (s PreferenceService) Prompts(ctx context.Context, userID int64) ([]string, error) {
	prefs, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(prefs))
	for _, p := range prefs {
		out = append(out, p.Prompt)
	}
	return out, nil
}
