package database

import (
	"testing"

	"memeverse/internal/config"
	"memeverse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_SQLite(t *testing.T) {
	cfg := &config.Config{
		DBDriver: "sqlite",
		DBPath:   ":memory:",
	}

	db, err := Connect(cfg)
	require.NoError(t, err)
	require.NotNil(t, db)

	// AutoMigrate must have created the entries table.
	assert.True(t, db.Migrator().HasTable(&models.KVEntry{}))

	err = db.Create(&models.KVEntry{Key: "likedMemes", Value: "[]", Version: 1}).Error
	assert.NoError(t, err)

	var entry models.KVEntry
	err = db.First(&entry, "key = ?", "likedMemes").Error
	assert.NoError(t, err)
	assert.Equal(t, "[]", entry.Value)
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	cfg := &config.Config{DBDriver: "oracle"}

	db, err := Connect(cfg)
	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "unsupported database driver")
}
