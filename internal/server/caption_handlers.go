package server

import (
	"io"

	"memeverse/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SuggestCaption handles GET /api/captions/suggest
func (s *Server) SuggestCaption(c *fiber.Ctx) error {
	if !s.featureEnabled(c, flagAICaptions) {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewFeatureDisabledError("Caption suggestions are temporarily disabled"))
	}
	return c.JSON(s.captionSvc.Suggest())
}

// PreviewCaption handles POST /api/captions/preview (multipart form).
// Fields: image (file, required), top_text, bottom_text, format. Responds
// with the captioned image as a JPEG data URL, or a downscaled WebP data URL
// when format is "webp"; nothing is stored or hosted.
func (s *Server) PreviewCaption(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Image file is required"))
	}
	if fileHeader.Size > maxUploadBytes {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Image is too large (max 10MB)"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read image file"))
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read image file"))
	}

	var dataURL string
	if c.FormValue("format") == "webp" {
		dataURL, err = s.renderer.RenderPreviewDataURL(image, c.FormValue("top_text"), c.FormValue("bottom_text"))
	} else {
		dataURL, err = s.renderer.RenderDataURL(image, c.FormValue("top_text"), c.FormValue("bottom_text"))
	}
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"preview": dataURL})
}
