package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/likecontent/pkg/domain"
)

func setupRedisStore(t *testing.T) (*RedisMetaStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewRedisMetaStore(context.Background(), RedisConfig{Addr: mr.Addr(), Prefix: "test"})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store, mr
}

func TestNewRedisMetaStore_Unreachable(t *testing.T) {
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisMetaStore(context.Background(), RedisConfig{Addr: addr})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping redis")
}

func TestRedisMetaStore_GetUpdate(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()

	_, found, err := store.GetMeta(ctx, 1, testKey)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.UpdateMeta(ctx, 1, testKey, "5"))
	value, found, err := store.GetMeta(ctx, 1, testKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "5", value)

	assert.Equal(t, "5", mr.HGet("test:meta:1", testKey))
	score, err := mr.ZScore("test:rank:"+testKey, "1")
	require.NoError(t, err)
	assert.InDelta(t, 5.0, score, 0.001)
}

func TestRedisMetaStore_IncrementMeta(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	n, err := store.IncrementMeta(ctx, 42, testKey)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = store.IncrementMeta(ctx, 42, testKey)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	value, _, err := store.GetMeta(ctx, 42, testKey)
	require.NoError(t, err)
	assert.Equal(t, "2", value)

	t.Run("garbage value restarts from zero", func(t *testing.T) {
		require.NoError(t, store.UpdateMeta(ctx, 43, testKey, "abc"))
		n, err := store.IncrementMeta(ctx, 43, testKey)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("leading digits are kept", func(t *testing.T) {
		tests := []struct {
			stored string
			want   int64
		}{
			{stored: "12abc", want: 13},
			{stored: " +7", want: 8},
			{stored: "-5", want: 1},
			{stored: "1.9", want: 2},
		}
		for i, tt := range tests {
			postID := int64(100 + i)
			require.NoError(t, store.UpdateMeta(ctx, postID, testKey, tt.stored))
			n, err := store.IncrementMeta(ctx, postID, testKey)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n, tt.stored)
			assert.Equal(t, domain.ParseCount(tt.stored)+1, n, "same reading as sqlite store for %q", tt.stored)
		}
	})

	t.Run("concurrent increments are not lost", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := store.IncrementMeta(ctx, 44, testKey)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
		value, _, err := store.GetMeta(ctx, 44, testKey)
		require.NoError(t, err)
		assert.Equal(t, "20", value)
	})
}

func TestRedisMetaStore_RankByMeta(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpdateMeta(ctx, 1, testKey, "3"))
	require.NoError(t, store.UpdateMeta(ctx, 2, testKey, "10"))
	require.NoError(t, store.UpdateMeta(ctx, 3, testKey, "1"))

	entries, err := store.RankByMeta(ctx, testKey, 0, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(2), entries[0].PostID)
	assert.Equal(t, "10", entries[0].Value)
	assert.Equal(t, int64(1), entries[1].PostID)

	entries, err = store.RankByMeta(ctx, testKey, 2, 2)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(3), entries[0].PostID)

	entries, err = store.RankByMeta(ctx, testKey, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRedisMetaStore_DeleteMeta(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpdateMeta(ctx, 1, testKey, "3"))
	require.NoError(t, store.UpdateMeta(ctx, 1, "other", "9"))
	require.NoError(t, store.UpdateMeta(ctx, 2, testKey, "4"))

	require.NoError(t, store.DeleteMeta(ctx, 1))

	assert.False(t, mr.Exists("test:meta:1"))
	entries, err := store.RankByMeta(ctx, testKey, 0, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].PostID)

	entries, err = store.RankByMeta(ctx, "other", 0, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// deleting unknown post is fine
	require.NoError(t, store.DeleteMeta(ctx, 100))
}
