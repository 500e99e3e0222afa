// Package seed provides helpers to create demo data for development
// environments. These helpers never run in production.
package seed

import (
	"fmt"
	"strconv"
	"time"

	"memeverse/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

var memeTitles = []string{
	"Monday Mood", "Debugging At 3AM", "When The Build Passes", "Cat Logic",
	"Weekend Plans", "My Code In Production", "One More Episode",
	"Waiting For The Review", "Group Project Energy", "Coffee Number Five",
}

var commentOpeners = []string{
	"lol", "this is so accurate", "I feel seen", "why is this me",
	"sending this to the group chat", "can't stop laughing", "too real",
	"10/10", "who made this", "saving this one",
}

// UploadFactory builds a demo uploaded meme. The ID follows the upload
// pipeline convention of millisecond timestamps so seeded and real uploads
// sort together.
func UploadFactory(f *gofakeit.Faker, createdAt time.Time) models.Meme {
	return models.Meme{
		ID:       strconv.FormatInt(createdAt.UnixMilli(), 10),
		Title:    memeTitles[f.Number(0, len(memeTitles)-1)],
		ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/800/800", f.UUID()),
		Likes:    f.Number(0, 500),
		Comments: 0,
		Creator: &models.Creator{
			ID:       "1",
			Username: "Anonymous",
		},
		CreatedAt: createdAt,
	}
}

// CommentFactory builds a demo comment.
func CommentFactory(f *gofakeit.Faker, createdAt time.Time) models.Comment {
	content := commentOpeners[f.Number(0, len(commentOpeners)-1)]
	if f.Number(0, 1) == 1 {
		content = content + " " + f.Emoji()
	}
	return models.Comment{
		ID:        uuid.NewString(),
		Content:   content,
		Author:    f.Username(),
		CreatedAt: createdAt,
	}
}

// ProfileFactory builds a demo user profile.
func ProfileFactory(f *gofakeit.Faker) models.UserProfile {
	return models.UserProfile{
		Name:   f.Username(),
		Bio:    f.Sentence(8),
		Avatar: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", f.UUID()),
	}
}
