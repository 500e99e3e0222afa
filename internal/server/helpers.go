// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"errors"

	"memeverse/internal/models"
	"memeverse/internal/service"

	"github.com/gofiber/fiber/v2"
)

// parseFeedInput extracts the feed query parameters with their defaults.
// Category and sort fall back to the landing view (trending by likes);
// validation of the values themselves happens in the service.
func parseFeedInput(c *fiber.Ctx) service.FeedInput {
	category := c.Query("category", string(models.CategoryTrending))
	sortBy := c.Query("sort", string(models.SortLikes))

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	return service.FeedInput{
		Query:    c.Query("q"),
		Category: models.Category(category),
		Sort:     models.Sort(sortBy),
		Page:     page,
	}
}

// statusForError maps an application error code to an HTTP status.
func statusForError(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case "VALIDATION_ERROR":
		return fiber.StatusBadRequest
	case "NOT_FOUND":
		return fiber.StatusNotFound
	case "CONFLICT":
		return fiber.StatusConflict
	case "RENDER_ERROR":
		return fiber.StatusUnprocessableEntity
	case "NETWORK_ERROR", "PARSE_ERROR", "HOSTING_ERROR":
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the standardized error response for a service failure.
func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, statusForError(err), err)
}
