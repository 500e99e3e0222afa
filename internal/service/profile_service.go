package service

import (
	"context"
	"strings"

	"memeverse/internal/models"
	"memeverse/internal/store"
	"memeverse/internal/validation"
)

// ProfileService reads and updates the single local user profile.
type ProfileService struct {
	interactions *store.Interactions
}

type UpdateProfileInput struct {
	Name   string
	Bio    string
	Avatar string
}

func NewProfileService(interactions *store.Interactions) *ProfileService {
	return &ProfileService{interactions: interactions}
}

// GetProfile returns the stored profile, or the default when none was saved.
func (s *ProfileService) GetProfile(ctx context.Context) (models.UserProfile, error) {
	return s.interactions.Profile(ctx)
}

// UpdateProfile validates and saves the profile wholesale.
func (s *ProfileService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (models.UserProfile, error) {
	name := strings.TrimSpace(in.Name)
	if err := validation.ValidateProfileName(name); err != nil {
		return models.UserProfile{}, err
	}
	if err := validation.ValidateProfileBio(in.Bio); err != nil {
		return models.UserProfile{}, err
	}

	profile := models.UserProfile{
		Name:   name,
		Bio:    strings.TrimSpace(in.Bio),
		Avatar: strings.TrimSpace(in.Avatar),
	}
	if err := s.interactions.SaveProfile(ctx, profile); err != nil {
		return models.UserProfile{}, err
	}
	return profile, nil
}
