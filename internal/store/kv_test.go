package store

import (
	"context"
	"regexp"
	"testing"

	"memeverse/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.KVEntry{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func setupTestKV(t *testing.T) KV {
	t.Helper()
	db := openTestDB(t)
	return NewKV(db)
}

func TestKV_GetMissingKey(t *testing.T) {
	t.Parallel()

	kv := setupTestKV(t)
	value, ok, err := kv.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestKV_UpdateCreatesAndSwaps(t *testing.T) {
	t.Parallel()

	kv := setupTestKV(t)
	ctx := context.Background()

	err := kv.Update(ctx, "greeting", func(current string) (string, error) {
		assert.Empty(t, current)
		return "hello", nil
	})
	require.NoError(t, err)

	value, ok, err := kv.Get(ctx, "greeting")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", value)

	err = kv.Update(ctx, "greeting", func(current string) (string, error) {
		assert.Equal(t, "hello", current)
		return current + " world", nil
	})
	require.NoError(t, err)

	value, _, err = kv.Get(ctx, "greeting")
	require.NoError(t, err)
	assert.Equal(t, "hello world", value)
}

func TestKV_UpdatePropagatesCallbackError(t *testing.T) {
	t.Parallel()

	kv := setupTestKV(t)
	wantErr := models.NewValidationError("bad payload")

	err := kv.Update(context.Background(), "k", func(string) (string, error) {
		return "", wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	// A failed update must not create the key.
	_, ok, getErr := kv.Get(context.Background(), "k")
	require.NoError(t, getErr)
	assert.False(t, ok)
}

func TestKV_DeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	kv := setupTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Update(ctx, "k", func(string) (string, error) { return "v", nil }))
	require.NoError(t, kv.Delete(ctx, "k"))

	_, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, kv.Delete(ctx, "k"))
}

func TestKV_UpdateRetriesWhenInsertRaceLost(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	kv := NewKV(db)
	ctx := context.Background()

	calls := 0
	err := kv.Update(ctx, "fresh", func(current string) (string, error) {
		calls++
		if calls == 1 {
			assert.Empty(t, current)
			// A competing writer claims the key between the missing read
			// and our insert.
			require.NoError(t, db.Create(&models.KVEntry{
				Key:     "fresh",
				Value:   "theirs",
				Version: 1,
			}).Error)
		} else {
			assert.Equal(t, "theirs", current)
		}
		return "mine", nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "expected a re-read after the lost insert race")

	value, ok, err := kv.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "mine", value)
}

func setupMockKV(t *testing.T) (KV, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	return NewKV(gormDB), mock
}

func TestKV_UpdateConflictExhaustsRetries(t *testing.T) {
	kv, mock := setupMockKV(t)

	selectQuery := regexp.QuoteMeta(`SELECT * FROM "kv_entries" WHERE key = $1 ORDER BY "kv_entries"."key" LIMIT $2`)
	updateQuery := regexp.QuoteMeta(`UPDATE "kv_entries" SET`)

	// Every swap attempt sees version 1 but affects zero rows, as if a
	// concurrent writer keeps winning.
	for i := 0; i < 5; i++ {
		mock.ExpectQuery(selectQuery).
			WithArgs("likedMemes", 1).
			WillReturnRows(sqlmock.NewRows([]string{"key", "value", "version"}).
				AddRow("likedMemes", "[]", 1))
		mock.ExpectBegin()
		mock.ExpectExec(updateQuery).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()
	}

	err := kv.Update(context.Background(), "likedMemes", func(string) (string, error) {
		return `["1"]`, nil
	})
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
