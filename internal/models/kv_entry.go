package models

import "time"

// KVEntry is one versioned slot of the interaction store. The version column
// backs compare-and-swap updates so concurrent writers cannot silently
// overwrite each other.
type KVEntry struct {
	Key       string    `gorm:"primaryKey;size:255" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	Version   int64     `gorm:"not null" json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}
