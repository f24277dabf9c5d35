package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisRepo(t *testing.T, cfg RedisProgressConfig) (*RedisProgressRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisProgressRepo(client, cfg), mr
}

func TestRedisProgress_IncrementLoadDelete(t *testing.T) {
	repo, mr := newTestRedisRepo(t, RedisProgressConfig{})
	ctx := context.Background()

	_, found, err := repo.Load(ctx, "anna")
	require.NoError(t, err)
	assert.False(t, found)

	mr.HSet("lingua:progress:anna", "correct", "6", "total", "8")
	inc, err := repo.Increment(ctx, "anna", true)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), inc.Correct)
	assert.Equal(t, uint64(9), inc.Total)

	assert.Equal(t, "7", mr.HGet("lingua:progress:anna", "correct"))
	assert.Equal(t, "9", mr.HGet("lingua:progress:anna", "total"))

	rec, found, err := repo.Load(ctx, "anna")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, uint64(7), rec.Correct)
	assert.Equal(t, uint64(9), rec.Total)
	assert.False(t, rec.UpdatedAt.IsZero())

	require.NoError(t, repo.Delete(ctx, "anna"))
	assert.False(t, mr.Exists("lingua:progress:anna"))
}

func TestRedisProgress_PrefixAndTTL(t *testing.T) {
	repo, mr := newTestRedisRepo(t, RedisProgressConfig{Prefix: "test", TTL: time.Hour})

	_, err := repo.Increment(context.Background(), "ben", true)
	require.NoError(t, err)

	assert.True(t, mr.Exists("test:ben"))
	assert.Equal(t, time.Hour, mr.TTL("test:ben"))
}

func TestRedisProgress_CorruptRecord(t *testing.T) {
	repo, mr := newTestRedisRepo(t, RedisProgressConfig{})
	mr.HSet("lingua:progress:carl", "correct", "many", "total", "3")

	_, _, err := repo.Load(context.Background(), "carl")
	assert.Error(t, err)
}

func TestRedisProgress_IncrementFromEmpty(t *testing.T) {
	repo, mr := newTestRedisRepo(t, RedisProgressConfig{})

	rec, err := repo.Increment(context.Background(), "dora", false)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), rec.Correct)
	assert.Equal(t, uint64(1), rec.Total)
	assert.Equal(t, "0", mr.HGet("lingua:progress:dora", "correct"))
}
