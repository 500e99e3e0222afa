package store

import (
	"context"
	"encoding/json"

	"memeverse/internal/models"
)

// Storage keys. Comments live in one slot per meme id; the rest are single
// slots. Each key swaps independently; there is no transaction across keys.
const (
	KeyLikedMemes    = "likedMemes"
	KeyUploadedMemes = "uploadedMemes"
	KeyUserProfile   = "userProfile"
	commentKeyPrefix = "comments-"
)

// CommentKey returns the storage key for a meme's comment list.
func CommentKey(memeID string) string {
	return commentKeyPrefix + memeID
}

// Interactions exposes the typed collections of the interaction store.
// A payload that fails to parse reads as the collection's zero value; the
// next write replaces it.
type Interactions struct {
	kv KV
}

// NewInteractions creates an Interactions layer over kv.
func NewInteractions(kv KV) *Interactions {
	return &Interactions{kv: kv}
}

// decodeOrZero unmarshals payload into out, leaving out untouched on absent
// or corrupt payloads.
func decodeOrZero(payload string, out any) {
	if payload == "" {
		return
	}
	// Corrupt payloads read as the documented default.
	_ = json.Unmarshal([]byte(payload), out)
}

// LikedIDs returns the set of liked meme ids.
func (s *Interactions) LikedIDs(ctx context.Context) ([]string, error) {
	payload, _, err := s.kv.Get(ctx, KeyLikedMemes)
	if err != nil {
		return nil, err
	}
	ids := []string{}
	decodeOrZero(payload, &ids)
	return ids, nil
}

// IsLiked reports whether memeID is in the liked set.
func (s *Interactions) IsLiked(ctx context.Context, memeID string) (bool, error) {
	ids, err := s.LikedIDs(ctx)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == memeID {
			return true, nil
		}
	}
	return false, nil
}

// ToggleLike flips membership of memeID in the liked set and returns the new
// state (true when the meme is now liked).
func (s *Interactions) ToggleLike(ctx context.Context, memeID string) (bool, error) {
	var nowLiked bool
	err := s.kv.Update(ctx, KeyLikedMemes, func(current string) (string, error) {
		ids := []string{}
		decodeOrZero(current, &ids)

		next := make([]string, 0, len(ids)+1)
		nowLiked = true
		for _, id := range ids {
			if id == memeID {
				nowLiked = false
				continue
			}
			next = append(next, id)
		}
		if nowLiked {
			next = append(next, memeID)
		}

		encoded, marshalErr := json.Marshal(next)
		return string(encoded), marshalErr
	})
	if err != nil {
		return false, err
	}
	return nowLiked, nil
}

// Comments returns the newest-first comment list for a meme.
func (s *Interactions) Comments(ctx context.Context, memeID string) ([]models.Comment, error) {
	payload, _, err := s.kv.Get(ctx, CommentKey(memeID))
	if err != nil {
		return nil, err
	}
	comments := []models.Comment{}
	decodeOrZero(payload, &comments)
	return comments, nil
}

// AddComment prepends a comment to the meme's list, keeping newest first.
func (s *Interactions) AddComment(ctx context.Context, memeID string, comment models.Comment) error {
	return s.kv.Update(ctx, CommentKey(memeID), func(current string) (string, error) {
		comments := []models.Comment{}
		decodeOrZero(current, &comments)

		next := append([]models.Comment{comment}, comments...)
		encoded, err := json.Marshal(next)
		return string(encoded), err
	})
}

// Uploads returns the uploaded meme list, newest first.
func (s *Interactions) Uploads(ctx context.Context) ([]models.Meme, error) {
	payload, _, err := s.kv.Get(ctx, KeyUploadedMemes)
	if err != nil {
		return nil, err
	}
	memes := []models.Meme{}
	decodeOrZero(payload, &memes)
	return memes, nil
}

// PrependUpload adds a freshly uploaded meme at the head of the upload list.
// Newest-first ordering is the contract for "My Uploads".
func (s *Interactions) PrependUpload(ctx context.Context, meme models.Meme) error {
	return s.kv.Update(ctx, KeyUploadedMemes, func(current string) (string, error) {
		memes := []models.Meme{}
		decodeOrZero(current, &memes)

		next := append([]models.Meme{meme}, memes...)
		encoded, err := json.Marshal(next)
		return string(encoded), err
	})
}

// RemoveUpload deletes one uploaded meme by id and reports whether it
// existed.
func (s *Interactions) RemoveUpload(ctx context.Context, memeID string) (bool, error) {
	var found bool
	err := s.kv.Update(ctx, KeyUploadedMemes, func(current string) (string, error) {
		memes := []models.Meme{}
		decodeOrZero(current, &memes)

		next := make([]models.Meme, 0, len(memes))
		for _, m := range memes {
			if m.ID == memeID {
				found = true
				continue
			}
			next = append(next, m)
		}

		encoded, err := json.Marshal(next)
		return string(encoded), err
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// Profile returns the saved user profile, or the default when none exists.
func (s *Interactions) Profile(ctx context.Context) (models.UserProfile, error) {
	payload, ok, err := s.kv.Get(ctx, KeyUserProfile)
	if err != nil {
		return models.UserProfile{}, err
	}
	profile := models.DefaultProfile()
	if ok {
		decodeOrZero(payload, &profile)
	}
	return profile, nil
}

// SaveProfile overwrites the profile wholesale; there is no history.
func (s *Interactions) SaveProfile(ctx context.Context, profile models.UserProfile) error {
	return s.kv.Update(ctx, KeyUserProfile, func(string) (string, error) {
		encoded, err := json.Marshal(profile)
		return string(encoded), err
	})
}
