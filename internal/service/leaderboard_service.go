package service

import (
	"context"
	"sort"
	"strconv"

	"memeverse/internal/cache"
	"memeverse/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

const (
	topMemeCount     = 10
	contributorCount = 10
	maxPoints        = 10000
)

// LeaderboardService ranks memes by like count and generates the decorative
// contributor rankings.
type LeaderboardService struct {
	memes *MemeService
	faker *gofakeit.Faker
}

// Leaderboard is the full leaderboard payload.
type Leaderboard struct {
	TopMemes     []models.Meme            `json:"topMemes"`
	Contributors []models.ContributorRank `json:"contributors"`
}

// NewLeaderboardService returns a LeaderboardService. Passing a seeded faker
// makes the contributor list reproducible in tests; nil uses a random one.
func NewLeaderboardService(memes *MemeService, faker *gofakeit.Faker) *LeaderboardService {
	if faker == nil {
		faker = gofakeit.New(0)
	}
	return &LeaderboardService{memes: memes, faker: faker}
}

// TopMemes returns the ten most liked memes in the current catalog.
func (s *LeaderboardService) TopMemes(ctx context.Context) ([]models.Meme, error) {
	memes, err := s.memes.Batch(ctx)
	if err != nil {
		return nil, err
	}

	ranked := make([]models.Meme, len(memes))
	copy(ranked, memes)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Likes > ranked[j].Likes
	})

	if len(ranked) > topMemeCount {
		ranked = ranked[:topMemeCount]
	}
	return ranked, nil
}

// Contributors returns the generated contributor rankings, cached so the
// list stays stable between page loads.
func (s *LeaderboardService) Contributors(ctx context.Context) ([]models.ContributorRank, error) {
	var ranks []models.ContributorRank
	err := cache.Aside(ctx, cache.LeaderboardKey, &ranks, cache.LeaderboardTTL, func() error {
		ranks = s.generateContributors()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ranks, nil
}

// Get returns the complete leaderboard.
func (s *LeaderboardService) Get(ctx context.Context) (*Leaderboard, error) {
	topMemes, err := s.TopMemes(ctx)
	if err != nil {
		return nil, err
	}
	contributors, err := s.Contributors(ctx)
	if err != nil {
		return nil, err
	}
	return &Leaderboard{TopMemes: topMemes, Contributors: contributors}, nil
}

func (s *LeaderboardService) generateContributors() []models.ContributorRank {
	ranks := make([]models.ContributorRank, 0, contributorCount)
	for i := 0; i < contributorCount; i++ {
		ranks = append(ranks, models.ContributorRank{
			ID:       strconv.Itoa(i + 1),
			Username: s.faker.Username(),
			Avatar:   s.faker.ImageURL(128, 128),
			Points:   s.faker.Number(100, maxPoints),
		})
	}

	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Points > ranks[j].Points
	})
	for i := range ranks {
		ranks[i].Rank = i + 1
	}
	return ranks
}
