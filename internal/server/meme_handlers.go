package server

import (
	"memeverse/internal/observability"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
)

// GetFeed handles GET /api/memes?q=...&category=...&sort=...&page=...
func (s *Server) GetFeed(c *fiber.Ctx) error {
	ctx := c.UserContext()

	in := parseFeedInput(c)
	observability.AddTraceAttributesToContext(ctx,
		attribute.String("feed.category", string(in.Category)),
		attribute.String("feed.sort", string(in.Sort)),
		attribute.Int("feed.page", in.Page),
	)

	page, err := s.memeSvc.Feed(ctx, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// GetMeme handles GET /api/memes/:id
func (s *Server) GetMeme(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id := c.Params("id")

	meme, err := s.memeSvc.GetMeme(ctx, id)
	if err != nil {
		return respondError(c, err)
	}

	liked, err := s.memeSvc.IsLiked(ctx, id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"meme":  meme,
		"liked": liked,
	})
}

// ToggleLike handles POST /api/memes/:id/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id := c.Params("id")

	liked, err := s.memeSvc.ToggleLike(ctx, id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"id":    id,
		"liked": liked,
	})
}

// GetLikedMemes handles GET /api/memes/liked
func (s *Server) GetLikedMemes(c *fiber.Ctx) error {
	ctx := c.UserContext()

	liked, err := s.memeSvc.LikedMemes(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(liked)
}
