package service

import (
	"context"
	"strings"
	"time"

	"memeverse/internal/models"
	"memeverse/internal/store"
	"memeverse/internal/validation"

	"github.com/google/uuid"
)

// AnonymousAuthor is attributed to every comment. There are no accounts.
const AnonymousAuthor = "Anonymous User"

// CommentService manages the per-meme comment threads.
type CommentService struct {
	interactions *store.Interactions
	memes        *MemeService
	now          func() time.Time
}

type AddCommentInput struct {
	MemeID  string
	Content string
}

func NewCommentService(interactions *store.Interactions, memes *MemeService, now func() time.Time) *CommentService {
	if now == nil {
		now = time.Now
	}
	return &CommentService{
		interactions: interactions,
		memes:        memes,
		now:          now,
	}
}

// ListComments returns the comment thread for a meme, newest first.
func (s *CommentService) ListComments(ctx context.Context, memeID string) ([]models.Comment, error) {
	if memeID == "" {
		return nil, models.NewValidationError("Meme ID is required")
	}
	return s.interactions.Comments(ctx, memeID)
}

// AddComment validates and stores a new comment at the head of the thread.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if in.MemeID == "" {
		return nil, models.NewValidationError("Meme ID is required")
	}

	content := strings.TrimSpace(in.Content)
	if err := validation.ValidateCommentContent(content); err != nil {
		return nil, err
	}

	if _, err := s.memes.GetMeme(ctx, in.MemeID); err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:        uuid.NewString(),
		Content:   content,
		Author:    AnonymousAuthor,
		CreatedAt: s.now().UTC(),
	}

	if err := s.interactions.AddComment(ctx, in.MemeID, comment); err != nil {
		return nil, err
	}
	return &comment, nil
}
