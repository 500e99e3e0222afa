// Package store implements the durable interaction store: a small key-value
// layer holding liked meme ids, per-meme comment lists, uploaded memes, and
// the user profile. Updates are compare-and-swap so two writers racing on the
// same key cannot silently drop each other's change.
package store

import (
	"context"
	"errors"

	"memeverse/internal/models"
	"memeverse/internal/observability"

	"gorm.io/gorm"
)

// maxCASRetries bounds the read-modify-write retry loop. Contention on a
// single-user store is rare; losing five races in a row means something is
// hammering the key.
const maxCASRetries = 5

// KV is the raw keyed storage underneath the typed collections.
type KV interface {
	// Get returns the stored payload and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Update atomically replaces the payload at key. fn receives the
	// current payload ("" when absent) and returns the replacement.
	Update(ctx context.Context, key string, fn func(current string) (string, error)) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

type gormKV struct {
	db *gorm.DB
}

// NewKV creates a KV backed by the given database.
func NewKV(db *gorm.DB) KV {
	return &gormKV{db: db}
}

func (s *gormKV) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, span := observability.TraceStoreOperation(ctx, "get", key)
	defer span.End()
	defer observability.TrackStoreQuery("get")()

	var entry models.KVEntry
	err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *gormKV) Update(ctx context.Context, key string, fn func(current string) (string, error)) error {
	ctx, span := observability.TraceStoreOperation(ctx, "update", key)
	defer span.End()
	defer observability.TrackStoreQuery("update")()

	for attempt := 0; attempt < maxCASRetries; attempt++ {
		var entry models.KVEntry
		err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			next, fnErr := fn("")
			if fnErr != nil {
				return fnErr
			}
			createErr := s.db.WithContext(ctx).Create(&models.KVEntry{
				Key:     key,
				Value:   next,
				Version: 1,
			}).Error
			if createErr == nil {
				return nil
			}
			if errors.Is(createErr, gorm.ErrDuplicatedKey) {
				// Lost the insert race; re-read and swap instead.
				continue
			}
			return createErr

		case err != nil:
			return err

		default:
			next, fnErr := fn(entry.Value)
			if fnErr != nil {
				return fnErr
			}
			res := s.db.WithContext(ctx).
				Model(&models.KVEntry{}).
				Where("key = ? AND version = ?", key, entry.Version).
				Updates(map[string]any{
					"value":   next,
					"version": entry.Version + 1,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 1 {
				return nil
			}
			// Version moved under us; retry against the new state.
		}
	}

	return models.NewConflictError("Store update lost the race too many times")
}

func (s *gormKV) Delete(ctx context.Context, key string) error {
	ctx, span := observability.TraceStoreOperation(ctx, "delete", key)
	defer span.End()
	defer observability.TrackStoreQuery("delete")()

	return s.db.WithContext(ctx).Delete(&models.KVEntry{}, "key = ?", key).Error
}
