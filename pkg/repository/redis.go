package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/umputun/likecontent/pkg/domain"
)

// RedisConfig represents redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// RedisMetaStore keeps post metadata in redis. Each post is a hash "<prefix>:meta:<id>",
// and every key has a sorted set "<prefix>:rank:<key>" scored by its numeric value.
type RedisMetaStore struct {
	client *redis.Client
	prefix string
}

const redisDialTimeout = 5 * time.Second

// incrScript bumps a hash field and its ranking in one step, the value is read by its leading digits.
// KEYS[1] - meta hash, KEYS[2] - rank set, ARGV[1] - meta key, ARGV[2] - post id
var incrScript = redis.NewScript(`
local raw = redis.call('HGET', KEYS[1], ARGV[1])
local v = 0
if raw then
	local digits = string.match(raw, '^%s*%+?(%d+)')
	if digits then v = tonumber(digits) end
end
v = v + 1
redis.call('HSET', KEYS[1], ARGV[1], tostring(v))
redis.call('ZADD', KEYS[2], v, ARGV[2])
return v
`)

// deleteScript drops a post hash and removes the post from every rank set of its keys.
// KEYS[1] - meta hash, ARGV[1] - rank key prefix, ARGV[2] - post id
var deleteScript = redis.NewScript(`
local keys = redis.call('HKEYS', KEYS[1])
for _, k in ipairs(keys) do
	redis.call('ZREM', ARGV[1] .. k, ARGV[2])
end
redis.call('DEL', KEYS[1])
return #keys
`)

// NewRedisMetaStore connects to redis and verifies the connection
func NewRedisMetaStore(ctx context.Context, cfg RedisConfig) (*RedisMetaStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	dialCtx, cancel := context.WithTimeout(ctx, redisDialTimeout)
	defer cancel()
	if err := client.Ping(dialCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "likecontent"
	}
	return &RedisMetaStore{client: client, prefix: prefix}, nil
}

// GetMeta returns the value stored for the post and key, found is false if absent
func (s *RedisMetaStore) GetMeta(ctx context.Context, postID int64, key string) (value string, found bool, err error) {
	value, err = s.client.HGet(ctx, s.metaKey(postID), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get meta: %w", err)
	}
	return value, true, nil
}

// UpdateMeta stores the value and refreshes the key ranking in a single transaction
func (s *RedisMetaStore) UpdateMeta(ctx context.Context, postID int64, key, value string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.metaKey(postID), key, value)
		pipe.ZAdd(ctx, s.rankKey(key), redis.Z{Score: float64(domain.ParseCount(value)), Member: postID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("update meta: %w", err)
	}
	return nil
}

// IncrementMeta atomically adds one to the numeric value of the key and returns the result
func (s *RedisMetaStore) IncrementMeta(ctx context.Context, postID int64, key string) (int64, error) {
	keys := []string{s.metaKey(postID), s.rankKey(key)}
	n, err := incrScript.Run(ctx, s.client, keys, key, postID).Int64()
	if err != nil {
		return 0, fmt.Errorf("increment meta: %w", err)
	}
	return n, nil
}

// RankByMeta returns entries of the key ordered by numeric value descending
func (s *RedisMetaStore) RankByMeta(ctx context.Context, key string, offset, limit int) ([]domain.MetaEntry, error) {
	if limit <= 0 {
		return []domain.MetaEntry{}, nil
	}
	start, stop := int64(offset), int64(offset+limit-1)
	zs, err := s.client.ZRevRangeWithScores(ctx, s.rankKey(key), start, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("rank by meta: %w", err)
	}

	entries := make([]domain.MetaEntry, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, domain.MetaEntry{PostID: id, Key: key, Value: strconv.FormatInt(int64(z.Score), 10)})
	}
	return entries, nil
}

// DeleteMeta removes every key stored for the post
func (s *RedisMetaStore) DeleteMeta(ctx context.Context, postID int64) error {
	keys := []string{s.metaKey(postID)}
	if err := deleteScript.Run(ctx, s.client, keys, s.prefix+":rank:", postID).Err(); err != nil {
		return fmt.Errorf("delete meta: %w", err)
	}
	return nil
}

// Close closes the redis client
func (s *RedisMetaStore) Close() error {
	return s.client.Close()
}

func (s *RedisMetaStore) metaKey(postID int64) string {
	return s.prefix + ":meta:" + strconv.FormatInt(postID, 10)
}

func (s *RedisMetaStore) rankKey(key string) string {
	return s.prefix + ":rank:" + key
}
