package seed

import (
	"context"
	"fmt"
	"log"
	"time"

	"memeverse/internal/store"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUploads      int
	CommentsPerMeme int
	ShouldClean     bool
	Seed            int64
}

// Seeder populates the interaction store with demo data.
type Seeder struct {
	kv           store.KV
	interactions *store.Interactions
	faker        *gofakeit.Faker
}

// NewSeeder creates a Seeder over the given database. A zero seed value
// seeds the faker from the clock.
func NewSeeder(db *gorm.DB, seedVal int64) *Seeder {
	if seedVal == 0 {
		seedVal = time.Now().UnixNano()
	}
	kv := store.NewKV(db)
	return &Seeder{
		kv:           kv,
		interactions: store.NewInteractions(kv),
		faker:        gofakeit.New(seedVal),
	}
}

// Run populates the store with demo uploads, comments, likes, and a profile.
func (s *Seeder) Run(ctx context.Context, opts Options) error {
	log.Printf("🌱 Starting seeding with %d uploads...", opts.NumUploads)

	if opts.ShouldClean {
		if err := s.ClearAll(ctx); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	if err := s.interactions.SaveProfile(ctx, ProfileFactory(s.faker)); err != nil {
		return fmt.Errorf("failed to seed profile: %w", err)
	}
	log.Println("✓ profile seeded")

	// Oldest first so each prepend leaves the newest upload at the head.
	now := time.Now().UTC()
	commentTotal := 0
	likeTotal := 0
	for i := opts.NumUploads - 1; i >= 0; i-- {
		createdAt := now.Add(-time.Duration(i) * time.Hour)
		meme := UploadFactory(s.faker, createdAt)

		commentCount := s.faker.Number(0, opts.CommentsPerMeme)
		for c := 0; c < commentCount; c++ {
			comment := CommentFactory(s.faker, createdAt.Add(time.Duration(c+1)*time.Minute))
			if err := s.interactions.AddComment(ctx, meme.ID, comment); err != nil {
				return fmt.Errorf("failed to seed comment for %s: %w", meme.ID, err)
			}
		}
		meme.Comments = commentCount
		commentTotal += commentCount

		if err := s.interactions.PrependUpload(ctx, meme); err != nil {
			return fmt.Errorf("failed to seed upload %s: %w", meme.ID, err)
		}

		// Roughly a third of seeded uploads start out liked.
		if s.faker.Number(1, 100) <= 33 {
			if _, err := s.interactions.ToggleLike(ctx, meme.ID); err != nil {
				return fmt.Errorf("failed to seed like for %s: %w", meme.ID, err)
			}
			likeTotal++
		}
	}

	log.Printf("✓ %d uploads, %d comments, %d likes seeded", opts.NumUploads, commentTotal, likeTotal)
	log.Println("🎉 Seeding completed successfully!")
	return nil
}

// ClearAll removes every seeded collection, including per-meme comment
// threads for currently stored uploads.
func (s *Seeder) ClearAll(ctx context.Context) error {
	log.Println("🗑️  Clearing existing data...")

	uploads, err := s.interactions.Uploads(ctx)
	if err != nil {
		return err
	}
	for _, meme := range uploads {
		if err := s.kv.Delete(ctx, store.CommentKey(meme.ID)); err != nil {
			return err
		}
	}

	for _, key := range []string{store.KeyLikedMemes, store.KeyUploadedMemes, store.KeyUserProfile} {
		if err := s.kv.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
