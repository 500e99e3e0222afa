package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"memeverse/internal/hosting"
	"memeverse/internal/models"
	"memeverse/internal/observability"
	"memeverse/internal/store"
	"memeverse/internal/validation"
)

// CaptionRenderer draws top and bottom text onto an image and returns the
// composited JPEG bytes.
type CaptionRenderer interface {
	Render(src []byte, topText, bottomText string) ([]byte, error)
}

// UploadService runs the upload pipeline: caption the image, push it to the
// external host, and record the resulting meme locally.
type UploadService struct {
	renderer     CaptionRenderer
	host         hosting.Host
	interactions *store.Interactions
	now          func() time.Time
}

type UploadMemeInput struct {
	Title      string
	TopText    string
	BottomText string
	Image      []byte
}

func NewUploadService(renderer CaptionRenderer, host hosting.Host, interactions *store.Interactions, now func() time.Time) *UploadService {
	if now == nil {
		now = time.Now
	}
	return &UploadService{
		renderer:     renderer,
		host:         host,
		interactions: interactions,
		now:          now,
	}
}

// Upload captions the image when caption text is present, uploads the result,
// and prepends the new meme to the local upload list. The hosted URL is the
// canonical image location; nothing is persisted if hosting fails.
func (s *UploadService) Upload(ctx context.Context, in UploadMemeInput) (*models.Meme, error) {
	title := strings.TrimSpace(in.Title)
	if err := validation.ValidateMemeTitle(title); err != nil {
		observability.RecordUpload("rejected")
		return nil, err
	}
	if len(in.Image) == 0 {
		observability.RecordUpload("rejected")
		return nil, models.NewValidationError("Image is required")
	}

	payload := in.Image
	if strings.TrimSpace(in.TopText) != "" || strings.TrimSpace(in.BottomText) != "" {
		rendered, err := s.renderer.Render(in.Image, in.TopText, in.BottomText)
		if err != nil {
			observability.RecordUpload("render_error")
			return nil, err
		}
		payload = rendered
	}

	url, err := s.host.Upload(ctx, payload)
	if err != nil {
		observability.RecordUpload("hosting_error")
		return nil, err
	}

	now := s.now().UTC()
	meme := models.Meme{
		ID:         strconv.FormatInt(now.UnixMilli(), 10),
		Title:      title,
		ImageURL:   url,
		Likes:      0,
		Comments:   0,
		TopText:    strings.TrimSpace(in.TopText),
		BottomText: strings.TrimSpace(in.BottomText),
		Creator: &models.Creator{
			ID:       "1",
			Username: "Anonymous",
		},
		CreatedAt: now,
	}

	if err := s.interactions.PrependUpload(ctx, meme); err != nil {
		observability.RecordUpload("store_error")
		return nil, err
	}

	observability.RecordUpload("ok")
	return &meme, nil
}

// ListUploads returns the locally uploaded memes, newest first.
func (s *UploadService) ListUploads(ctx context.Context) ([]models.Meme, error) {
	return s.interactions.Uploads(ctx)
}

// DeleteUpload removes an uploaded meme by ID.
func (s *UploadService) DeleteUpload(ctx context.Context, id string) error {
	if id == "" {
		return models.NewValidationError("Meme ID is required")
	}
	removed, err := s.interactions.RemoveUpload(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewNotFoundError("Upload", id)
	}
	return nil
}
