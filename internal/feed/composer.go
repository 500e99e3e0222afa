// Package feed implements the meme feed composition pipeline: filter by
// query, apply category semantics, reorder by the sort selector, paginate.
package feed

import (
	"math/rand"
	"sort"
	"strings"
	"sync"

	"memeverse/internal/models"
)

const (
	// DefaultPageSize is the fixed page size of the meme feed.
	DefaultPageSize = 12
	// ClassicWindow is the positional slice that defines the "classic"
	// category. Classic is not a property of the record; it is the first
	// N memes of the filtered batch.
	ClassicWindow = 20
)

// Options selects a feed view. Query is a case-insensitive substring match
// against titles; Category and Sort are independent selectors.
type Options struct {
	Query    string
	Category models.Category
	Sort     models.Sort
	Page     int
	PageSize int
}

// Page is one paginated view of the composed feed.
type Page struct {
	Memes   []models.Meme `json:"memes"`
	Total   int           `json:"total"`
	Page    int           `json:"page"`
	HasMore bool          `json:"has_more"`
}

// Composer produces paginated feed views from a normalized meme batch. The
// random source backs only the "random" category; inject a seeded source for
// a reproducible shuffle. A single Composer serves concurrent requests, so
// the generator is mutex-guarded.
type Composer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewComposer creates a Composer drawing random permutations from src.
func NewComposer(src rand.Source) *Composer {
	return &Composer{rng: rand.New(src)}
}

// Compose filters, orders, and paginates memes according to opts. All steps
// are total over possibly-empty input. The category filter runs first, then
// the sort selector reorders its result; for "classic" the truncation to the
// first ClassicWindow memes happens before the sort selector, so sorting only
// rearranges within the truncated window. The permutation for "random" is
// drawn once per call.
func (c *Composer) Compose(memes []models.Meme, opts Options) Page {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	pageSize := opts.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	filtered := filterByQuery(memes, opts.Query)

	switch opts.Category {
	case models.CategoryTrending:
		sortByLikes(filtered)
	case models.CategoryNew:
		sortByDate(filtered)
	case models.CategoryRandom:
		c.mu.Lock()
		c.rng.Shuffle(len(filtered), func(i, j int) {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		})
		c.mu.Unlock()
	case models.CategoryClassic:
		if len(filtered) > ClassicWindow {
			filtered = filtered[:ClassicWindow]
		}
	}

	switch opts.Sort {
	case models.SortLikes:
		sortByLikes(filtered)
	case models.SortDate:
		sortByDate(filtered)
	case models.SortComments:
		sortByComments(filtered)
	}

	total := len(filtered)
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Memes:   filtered[start:end],
		Total:   total,
		Page:    page,
		HasMore: page*pageSize < total,
	}
}

// filterByQuery returns memes whose title contains query, case-insensitively.
// An empty query matches everything. The result is always a fresh slice so
// later sorting never reorders the caller's batch.
func filterByQuery(memes []models.Meme, query string) []models.Meme {
	out := make([]models.Meme, 0, len(memes))
	if query == "" {
		return append(out, memes...)
	}
	q := strings.ToLower(query)
	for _, m := range memes {
		if strings.Contains(strings.ToLower(m.Title), q) {
			out = append(out, m)
		}
	}
	return out
}

func sortByLikes(memes []models.Meme) {
	sort.SliceStable(memes, func(i, j int) bool {
		return memes[i].Likes > memes[j].Likes
	})
}

func sortByDate(memes []models.Meme) {
	sort.SliceStable(memes, func(i, j int) bool {
		return memes[i].CreatedAt.After(memes[j].CreatedAt)
	})
}

func sortByComments(memes []models.Meme) {
	sort.SliceStable(memes, func(i, j int) bool {
		return memes[i].Comments > memes[j].Comments
	})
}
