package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/likecontent/pkg/domain"
)

// setupTestDB creates in-memory repositories closed at test end
func setupTestDB(t *testing.T) *Repositories {
	t.Helper()
	cfg := Config{
		DSN:             ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 30 * time.Second,
	}

	repos, err := NewRepositories(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, repos.Close()) })
	return repos
}

func TestRepositories_Integration(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repos.Ping(ctx))

	post := &domain.Post{ID: 42, Type: "post", Title: "Hello", Permalink: "https://example.com/hello"}
	require.NoError(t, repos.Post.UpsertPost(ctx, post))

	n, err := repos.Meta.IncrementMeta(ctx, 42, "_be_like_content")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	value, found, err := repos.Meta.GetMeta(ctx, 42, "_be_like_content")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "1", value)

	require.NoError(t, repos.Post.DeletePost(ctx, 42))
	_, found, err = repos.Meta.GetMeta(ctx, 42, "_be_like_content")
	require.NoError(t, err)
	assert.False(t, found, "meta goes away with the post")
}

func TestNewRepositories_FileDB(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)"
	repos, err := NewRepositories(context.Background(), Config{DSN: dsn, MaxOpenConns: 2})
	require.NoError(t, err)
	defer repos.Close()

	// schema init is idempotent
	require.NoError(t, initSchema(context.Background(), repos.DB))

	var count int
	err = repos.DB.Get(&count, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('posts','post_meta')")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCriticalError(t *testing.T) {
	originalErr := fmt.Errorf("test error message")
	critErr := &criticalError{err: originalErr}

	assert.Equal(t, "test error message", critErr.Error())
	assert.ErrorIs(t, critErr, originalErr)
	assert.ErrorIs(t, critErr, errNoRetry)
}

func TestClassify(t *testing.T) {
	assert.NoError(t, classify(nil))

	lockErr := fmt.Errorf("database is locked")
	assert.Equal(t, lockErr, classify(lockErr))

	err := classify(fmt.Errorf("syntax error"))
	var ce *criticalError
	assert.ErrorAs(t, err, &ce)
}

func TestIsLockError(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.False(t, isLockError(nil))
	})

	t.Run("sqlite busy error", func(t *testing.T) {
		err := fmt.Errorf("SQLITE_BUSY: database is busy")
		assert.True(t, isLockError(err))
	})

	t.Run("database locked error", func(t *testing.T) {
		err := fmt.Errorf("database is locked")
		assert.True(t, isLockError(err))
	})

	t.Run("table locked error", func(t *testing.T) {
		err := fmt.Errorf("database table is locked")
		assert.True(t, isLockError(err))
	})

	t.Run("non-lock error", func(t *testing.T) {
		err := fmt.Errorf("syntax error")
		assert.False(t, isLockError(err))
	})
}
