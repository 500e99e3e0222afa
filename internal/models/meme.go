// Package models contains data structures for the application's domain models.
package models

import "time"

// Category is a coarse display grouping for the meme feed, distinct from the
// independent sort selector.
type Category string

// Feed categories.
const (
	CategoryTrending Category = "trending"
	CategoryNew      Category = "new"
	CategoryClassic  Category = "classic"
	CategoryRandom   Category = "random"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryTrending, CategoryNew, CategoryClassic, CategoryRandom:
		return true
	}
	return false
}

// Sort is the feed ordering selector.
type Sort string

// Feed sort selectors.
const (
	SortLikes    Sort = "likes"
	SortDate     Sort = "date"
	SortComments Sort = "comments"
)

// Valid reports whether s is a known sort selector.
func (s Sort) Valid() bool {
	switch s {
	case SortLikes, SortDate, SortComments:
		return true
	}
	return false
}

// Creator identifies who uploaded a meme. Uploads made through this service
// carry a fixed placeholder identity.
type Creator struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Meme is the central content record: an image with caption text and
// community engagement counters. Remote-sourced memes are ephemeral and
// re-randomized on every fetch; uploaded memes are durable until deleted.
type Meme struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	ImageURL   string    `json:"image_url"`
	Likes      int       `json:"likes"`
	Comments   int       `json:"comments"`
	Creator    *Creator  `json:"creator,omitempty"`
	TopText    string    `json:"top_text,omitempty"`
	BottomText string    `json:"bottom_text,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Comment is a user comment on a meme, stored newest-first per meme id.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// UserProfile is the single local profile record, overwritten wholesale on
// save.
type UserProfile struct {
	Name   string `json:"name"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}

// DefaultProfile is returned when no profile has been saved yet.
func DefaultProfile() UserProfile {
	return UserProfile{
		Name:   "Meme Master",
		Bio:    "Certified meme connoisseur",
		Avatar: "",
	}
}

// ContributorRank is one row of the leaderboard's contributor list. Point
// totals are generated, not earned; the leaderboard is decorative.
type ContributorRank struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
	Points   int    `json:"points"`
	Rank     int    `json:"rank"`
}
