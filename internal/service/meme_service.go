package service

import (
	"context"

	"memeverse/internal/cache"
	"memeverse/internal/feed"
	"memeverse/internal/memesource"
	"memeverse/internal/models"
	"memeverse/internal/observability"
	"memeverse/internal/store"
)

// MemeService serves the browsing surface: the feed, single meme lookups,
// and like toggling.
type MemeService struct {
	source       memesource.Source
	normalizer   *memesource.Normalizer
	composer     *feed.Composer
	interactions *store.Interactions
}

// FeedInput selects a feed page. The page size is fixed at
// feed.DefaultPageSize and not client-controlled.
type FeedInput struct {
	Query    string
	Category models.Category
	Sort     models.Sort
	Page     int
}

func NewMemeService(
	source memesource.Source,
	normalizer *memesource.Normalizer,
	composer *feed.Composer,
	interactions *store.Interactions,
) *MemeService {
	return &MemeService{
		source:       source,
		normalizer:   normalizer,
		composer:     composer,
		interactions: interactions,
	}
}

// Batch returns the normalized meme catalog, served from the cache when warm.
// Engagement counters are assigned at fetch time and stay stable for the
// cache TTL, so repeated reads within the window agree with each other.
func (s *MemeService) Batch(ctx context.Context) ([]models.Meme, error) {
	var memes []models.Meme
	err := cache.Aside(ctx, cache.MemeBatchKey, &memes, cache.MemeBatchTTL, func() error {
		remote, err := s.source.FetchMemes(ctx)
		if err != nil {
			observability.RecordMemeFetch("error")
			return err
		}
		observability.RecordMemeFetch("ok")
		memes = s.normalizer.Normalize(remote)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return memes, nil
}

// Feed composes a page of the meme feed from the current catalog.
func (s *MemeService) Feed(ctx context.Context, in FeedInput) (*feed.Page, error) {
	if !in.Category.Valid() {
		return nil, models.NewValidationError("Invalid category")
	}
	if !in.Sort.Valid() {
		return nil, models.NewValidationError("Invalid sort")
	}

	memes, err := s.Batch(ctx)
	if err != nil {
		return nil, err
	}

	page := s.composer.Compose(memes, feed.Options{
		Query:    in.Query,
		Category: in.Category,
		Sort:     in.Sort,
		Page:     in.Page,
	})
	return &page, nil
}

// GetMeme looks up a meme by ID across the catalog and local uploads.
func (s *MemeService) GetMeme(ctx context.Context, id string) (*models.Meme, error) {
	if id == "" {
		return nil, models.NewValidationError("Meme ID is required")
	}

	memes, err := s.Batch(ctx)
	if err != nil {
		return nil, err
	}
	for i := range memes {
		if memes[i].ID == id {
			return &memes[i], nil
		}
	}

	uploads, err := s.interactions.Uploads(ctx)
	if err != nil {
		return nil, err
	}
	for i := range uploads {
		if uploads[i].ID == id {
			return &uploads[i], nil
		}
	}

	return nil, models.NewNotFoundError("Meme", id)
}

// ToggleLike flips the like state for a meme and returns the new state.
func (s *MemeService) ToggleLike(ctx context.Context, id string) (bool, error) {
	if _, err := s.GetMeme(ctx, id); err != nil {
		return false, err
	}
	return s.interactions.ToggleLike(ctx, id)
}

// IsLiked reports whether the meme is in the liked set.
func (s *MemeService) IsLiked(ctx context.Context, id string) (bool, error) {
	return s.interactions.IsLiked(ctx, id)
}

// LikedMemes returns the memes in the liked set. IDs that no longer resolve,
// for example after the catalog rotated out of the cache, are skipped rather
// than failing the whole listing.
func (s *MemeService) LikedMemes(ctx context.Context) ([]models.Meme, error) {
	ids, err := s.interactions.LikedIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Meme{}, nil
	}

	memes, err := s.Batch(ctx)
	if err != nil {
		return nil, err
	}
	uploads, err := s.interactions.Uploads(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Meme, len(memes)+len(uploads))
	for _, m := range memes {
		byID[m.ID] = m
	}
	for _, m := range uploads {
		byID[m.ID] = m
	}

	liked := make([]models.Meme, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			liked = append(liked, m)
		}
	}
	return liked, nil
}
