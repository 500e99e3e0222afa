package server

import (
	"io"

	"memeverse/internal/models"
	"memeverse/internal/service"

	"github.com/gofiber/fiber/v2"
)

// maxUploadBytes bounds the accepted image size (10MB).
const maxUploadBytes = 10 << 20

// UploadMeme handles POST /api/uploads (multipart form).
// Fields: image (file, required), title (required), top_text, bottom_text.
func (s *Server) UploadMeme(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if !s.featureEnabled(c, flagUploads) {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewFeatureDisabledError("Uploads are temporarily disabled"))
	}

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
	if len(image) > maxUploadBytes {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Image is too large (max 10MB)"))
	}

	meme, err := s.uploadSvc.Upload(ctx, service.UploadMemeInput{
		Title:      c.FormValue("title"),
		TopText:    c.FormValue("top_text"),
		BottomText: c.FormValue("bottom_text"),
		Image:      image,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(meme)
}

// GetUploads handles GET /api/uploads
func (s *Server) GetUploads(c *fiber.Ctx) error {
	ctx := c.UserContext()

	uploads, err := s.uploadSvc.ListUploads(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(uploads)
}

// DeleteUpload handles DELETE /api/uploads/:id
func (s *Server) DeleteUpload(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if err := s.uploadSvc.DeleteUpload(ctx, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
