package server

import (
	"memeverse/internal/models"
	"memeverse/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/memes/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.UserContext()

	comments, err := s.commentSvc.ListComments(ctx, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comments)
}

// CreateComment handles POST /api/memes/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	created, err := s.commentSvc.AddComment(ctx, service.AddCommentInput{
		MemeID:  c.Params("id"),
		Content: req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}
