package server

import (
	"memeverse/internal/models"
	"memeverse/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/profile
func (s *Server) GetProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	profile, err := s.profileSvc.GetProfile(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// UpdateProfile handles PUT /api/profile
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Name   string `json:"name"`
		Bio    string `json:"bio"`
		Avatar string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileSvc.UpdateProfile(ctx, service.UpdateProfileInput{
		Name:   req.Name,
		Bio:    req.Bio,
		Avatar: req.Avatar,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}
