package service

import (
	"context"
	"errors"
	"testing"

	"memeverse/internal/memesource"
	"memeverse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemeService_Feed(t *testing.T) {
	svc, _ := newTestMemeService(t, func(_ context.Context) ([]memesource.RemoteMeme, error) {
		return remoteMemes("drake", "distracted-boyfriend", "two-buttons"), nil
	})
	ctx := context.Background()

	t.Run("returns a page of the catalog", func(t *testing.T) {
		page, err := svc.Feed(ctx, FeedInput{Category: models.CategoryNew, Sort: models.SortDate, Page: 1})
		require.NoError(t, err)
		assert.Len(t, page.Memes, 3)
		assert.Equal(t, 3, page.Total)
		assert.False(t, page.HasMore)
	})

	t.Run("query filters by title", func(t *testing.T) {
		page, err := svc.Feed(ctx, FeedInput{Query: "DRAKE", Category: models.CategoryNew, Sort: models.SortDate, Page: 1})
		require.NoError(t, err)
		require.Len(t, page.Memes, 1)
		assert.Equal(t, "drake", page.Memes[0].Title)
	})

	t.Run("invalid category is rejected", func(t *testing.T) {
		_, err := svc.Feed(ctx, FeedInput{Category: "spicy", Sort: models.SortDate})
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("invalid sort is rejected", func(t *testing.T) {
		_, err := svc.Feed(ctx, FeedInput{Category: models.CategoryNew, Sort: "upside-down"})
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("source failure propagates", func(t *testing.T) {
		failing, _ := newTestMemeService(t, func(_ context.Context) ([]memesource.RemoteMeme, error) {
			return nil, models.NewNetworkError("Meme API request failed", errors.New("boom"))
		})
		_, err := failing.Feed(ctx, FeedInput{Category: models.CategoryNew, Sort: models.SortDate})
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "NETWORK_ERROR", appErr.Code)
	})
}

func TestMemeService_GetMeme(t *testing.T) {
	svc, interactions := newTestMemeService(t, func(_ context.Context) ([]memesource.RemoteMeme, error) {
		return remoteMemes("drake"), nil
	})
	ctx := context.Background()

	t.Run("finds a catalog meme", func(t *testing.T) {
		meme, err := svc.GetMeme(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "drake", meme.Title)
	})

	t.Run("finds an uploaded meme", func(t *testing.T) {
		upload := models.Meme{ID: "1750000000000", Title: "my upload", ImageURL: "https://i.ibb.co/x/y.jpg"}
		require.NoError(t, interactions.PrependUpload(ctx, upload))

		meme, err := svc.GetMeme(ctx, "1750000000000")
		require.NoError(t, err)
		assert.Equal(t, "my upload", meme.Title)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := svc.GetMeme(ctx, "nope")
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("empty id is rejected", func(t *testing.T) {
		_, err := svc.GetMeme(ctx, "")
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}

func TestMemeService_ToggleLike(t *testing.T) {
	svc, _ := newTestMemeService(t, func(_ context.Context) ([]memesource.RemoteMeme, error) {
		return remoteMemes("drake", "fine"), nil
	})
	ctx := context.Background()

	liked, err := svc.ToggleLike(ctx, "a")
	require.NoError(t, err)
	assert.True(t, liked)

	isLiked, err := svc.IsLiked(ctx, "a")
	require.NoError(t, err)
	assert.True(t, isLiked)

	liked, err = svc.ToggleLike(ctx, "a")
	require.NoError(t, err)
	assert.False(t, liked)

	t.Run("unknown meme cannot be liked", func(t *testing.T) {
		_, err := svc.ToggleLike(ctx, "ghost")
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}

func TestMemeService_LikedMemes(t *testing.T) {
	svc, interactions := newTestMemeService(t, func(_ context.Context) ([]memesource.RemoteMeme, error) {
		return remoteMemes("drake", "fine"), nil
	})
	ctx := context.Background()

	t.Run("empty set yields empty slice", func(t *testing.T) {
		liked, err := svc.LikedMemes(ctx)
		require.NoError(t, err)
		assert.Empty(t, liked)
	})

	t.Run("resolves catalog and upload likes, skipping stale ids", func(t *testing.T) {
		_, err := svc.ToggleLike(ctx, "a")
		require.NoError(t, err)

		upload := models.Meme{ID: "u1", Title: "mine"}
		require.NoError(t, interactions.PrependUpload(ctx, upload))
		_, err = svc.ToggleLike(ctx, "u1")
		require.NoError(t, err)

		// A like whose meme no longer resolves anywhere is dropped from
		// the listing, not an error.
		_, err = interactions.ToggleLike(ctx, "rotated-out")
		require.NoError(t, err)

		liked, err := svc.LikedMemes(ctx)
		require.NoError(t, err)
		ids := make([]string, 0, len(liked))
		for _, m := range liked {
			ids = append(ids, m.ID)
		}
		assert.ElementsMatch(t, []string{"a", "u1"}, ids)
	})
}
