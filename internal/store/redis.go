package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisProgressConfig configures RedisProgressRepo.
type RedisProgressConfig struct {
	Prefix string        // key prefix, default "lingua:progress"
	TTL    time.Duration // expiry of idle learners, 0 = never
}

// RedisProgressRepo stores each learner's counters in a hash at
// "{prefix}:{learnerID}" with fields correct, total and updated_at.
type RedisProgressRepo struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisProgressRepo creates a ProgressRepo backed by Redis.
func NewRedisProgressRepo(client redis.UniversalClient, config ...RedisProgressConfig) *RedisProgressRepo {
	cfg := RedisProgressConfig{}
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "lingua:progress"
	}
	return &RedisProgressRepo{client: client, prefix: cfg.Prefix, ttl: cfg.TTL}
}

func (r *RedisProgressRepo) key(learnerID string) string {
	return fmt.Sprintf("%s:%s", r.prefix, learnerID)
}

func (r *RedisProgressRepo) Load(ctx context.Context, learnerID string) (ProgressRecord, bool, error) {
	fields, err := r.client.HGetAll(ctx, r.key(learnerID)).Result()
	if err != nil {
		return ProgressRecord{}, false, fmt.Errorf("load progress: %w", err)
	}
	if len(fields) == 0 {
		return ProgressRecord{}, false, nil
	}

	var rec ProgressRecord
	if rec.Correct, err = strconv.ParseUint(fields["correct"], 10, 64); err != nil {
		return ProgressRecord{}, false, fmt.Errorf("parse correct: %w", err)
	}
	if rec.Total, err = strconv.ParseUint(fields["total"], 10, 64); err != nil {
		return ProgressRecord{}, false, fmt.Errorf("parse total: %w", err)
	}
	if ns, err := strconv.ParseInt(fields["updated_at"], 10, 64); err == nil {
		rec.UpdatedAt = time.Unix(0, ns).UTC()
	}
	return rec, true, nil
}

// Increment bumps the counters with HINCRBY inside a MULTI block so
// concurrent writers never lose an attempt.
func (r *RedisProgressRepo) Increment(ctx context.Context, learnerID string, isCorrect bool) (ProgressRecord, error) {
	var inc int64
	if isCorrect {
		inc = 1
	}
	now := time.Now().UTC()

	key := r.key(learnerID)
	var correct, total *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		correct = pipe.HIncrBy(ctx, key, "correct", inc)
		total = pipe.HIncrBy(ctx, key, "total", 1)
		pipe.HSet(ctx, key, "updated_at", strconv.FormatInt(now.UnixNano(), 10))
		if r.ttl > 0 {
			pipe.Expire(ctx, key, r.ttl)
		}
		return nil
	})
	if err != nil {
		return ProgressRecord{}, fmt.Errorf("increment progress: %w", err)
	}
	return ProgressRecord{
		Correct:   uint64(correct.Val()),
		Total:     uint64(total.Val()),
		UpdatedAt: now,
	}, nil
}

func (r *RedisProgressRepo) Delete(ctx context.Context, learnerID string) error {
	if err := r.client.Del(ctx, r.key(learnerID)).Err(); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	return nil
}
