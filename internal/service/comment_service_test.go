package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"memeverse/internal/memesource"
	"memeverse/internal/models"
	"memeverse/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommentService(t *testing.T) *CommentService {
	t.Helper()
	memes, interactions := newTestMemeService(t, func(_ context.Context) ([]memesource.RemoteMeme, error) {
		return remoteMemes("drake", "fine"), nil
	})
	return NewCommentService(interactions, memes, fixedNow)
}

func TestCommentService_AddComment(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a comment with generated identity", func(t *testing.T) {
		svc := newTestCommentService(t)

		comment, err := svc.AddComment(ctx, AddCommentInput{MemeID: "a", Content: "  classic  "})
		require.NoError(t, err)
		assert.NotEmpty(t, comment.ID)
		assert.Equal(t, "classic", comment.Content)
		assert.Equal(t, AnonymousAuthor, comment.Author)
		assert.Equal(t, fixedNow(), comment.CreatedAt)
	})

	t.Run("newest comment comes first", func(t *testing.T) {
		svc := newTestCommentService(t)

		_, err := svc.AddComment(ctx, AddCommentInput{MemeID: "a", Content: "first"})
		require.NoError(t, err)
		_, err = svc.AddComment(ctx, AddCommentInput{MemeID: "a", Content: "second"})
		require.NoError(t, err)

		comments, err := svc.ListComments(ctx, "a")
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "second", comments[0].Content)
		assert.Equal(t, "first", comments[1].Content)
	})

	t.Run("validation failures", func(t *testing.T) {
		svc := newTestCommentService(t)

		tests := []struct {
			name string
			in   AddCommentInput
			code string
		}{
			{name: "missing meme id", in: AddCommentInput{Content: "hi"}, code: "VALIDATION_ERROR"},
			{name: "empty content", in: AddCommentInput{MemeID: "a", Content: "   "}, code: "VALIDATION_ERROR"},
			{name: "content too long", in: AddCommentInput{MemeID: "a", Content: strings.Repeat("x", validation.MaxCommentLen+1)}, code: "VALIDATION_ERROR"},
			{name: "unknown meme", in: AddCommentInput{MemeID: "ghost", Content: "hi"}, code: "NOT_FOUND"},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.AddComment(ctx, tt.in)
				var appErr *models.AppError
				require.True(t, errors.As(err, &appErr))
				assert.Equal(t, tt.code, appErr.Code)
			})
		}
	})
}

func TestCommentService_ListComments(t *testing.T) {
	ctx := context.Background()
	svc := newTestCommentService(t)

	t.Run("empty thread yields empty slice", func(t *testing.T) {
		comments, err := svc.ListComments(ctx, "a")
		require.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("threads are isolated per meme", func(t *testing.T) {
		_, err := svc.AddComment(ctx, AddCommentInput{MemeID: "a", Content: "on a"})
		require.NoError(t, err)

		comments, err := svc.ListComments(ctx, "b")
		require.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("empty meme id is rejected", func(t *testing.T) {
		_, err := svc.ListComments(ctx, "")
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}
