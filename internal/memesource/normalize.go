package memesource

import (
	"math/rand"
	"sync"
	"time"

	"memeverse/internal/models"
)

// Engagement counter bounds for normalized memes.
const (
	maxFabricatedLikes    = 1000
	maxFabricatedComments = 100
)

// Normalizer maps remote meme records into the internal shape, fabricating
// likes and comments with pseudo-random counts and stamping fetch time as
// createdAt. Re-fetching therefore resets engagement numbers; that content
// inconsistency is inherited behavior, not a bug. One Normalizer is shared
// by concurrent requests, so the generator is mutex-guarded.
type Normalizer struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewNormalizer creates a Normalizer drawing counters from src and
// timestamping with now.
func NewNormalizer(src rand.Source, now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{rng: rand.New(src), now: now}
}

// Normalize converts a remote batch into internal Meme records.
func (n *Normalizer) Normalize(remote []RemoteMeme) []models.Meme {
	fetchedAt := n.now().UTC()
	memes := make([]models.Meme, 0, len(remote))
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, r := range remote {
		memes = append(memes, models.Meme{
			ID:        r.ID,
			Title:     r.Name,
			ImageURL:  r.URL,
			Likes:     n.rng.Intn(maxFabricatedLikes),
			Comments:  n.rng.Intn(maxFabricatedComments),
			CreatedAt: fetchedAt,
		})
	}
	return memes
}
