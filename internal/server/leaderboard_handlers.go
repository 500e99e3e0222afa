package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetLeaderboard handles GET /api/leaderboard
func (s *Server) GetLeaderboard(c *fiber.Ctx) error {
	ctx := c.UserContext()

	board, err := s.leaderboardSvc.Get(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(board)
}
