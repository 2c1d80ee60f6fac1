package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/pomodoro/domain"
	"github.com/fastygo/pomodoro/repository"
)

type statsCache struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewStatsCache creates a Redis-backed statistics cache. Entries are keyed
// by user and calendar day, so yesterday's entry never answers for today.
func NewStatsCache(client *redislib.Client, ttl time.Duration) repository.StatsCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &statsCache{
		client: client,
		prefix: "stats:",
		ttl:    ttl,
	}
}

func (c *statsCache) Get(ctx context.Context, userID int64, day string) (*domain.Stats, error) {
	result, err := c.client.HGet(ctx, c.key(userID), day).Result()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var stats domain.Stats
	if err := json.Unmarshal([]byte(result), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *statsCache) Generation(ctx context.Context, userID int64) (int64, error) {
	return readGeneration(ctx, c.client, c.genKey(userID))
}

// Set writes under WATCH on the generation key: the entry is stored only if
// the generation still equals gen when the transaction executes.
func (c *statsCache) Set(ctx context.Context, userID int64, day string, gen int64, stats *domain.Stats) error {
	if stats == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	key, genKey := c.key(userID), c.genKey(userID)
	err = c.client.Watch(ctx, func(tx *redislib.Tx) error {
		current, err := readGeneration(ctx, tx, genKey)
		if err != nil {
			return err
		}
		if current != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redislib.Pipeliner) error {
			pipe.HSet(ctx, key, day, payload)
			pipe.Expire(ctx, key, c.ttl)
			return nil
		})
		return err
	}, genKey)
	if errors.Is(err, redislib.TxFailedErr) {
		// invalidated while writing
		return nil
	}
	return err
}

func (c *statsCache) Invalidate(ctx context.Context, userID int64) error {
	pipe := c.client.TxPipeline()
	pipe.Incr(ctx, c.genKey(userID))
	pipe.Del(ctx, c.key(userID))
	_, err := pipe.Exec(ctx)
	return err
}

func (c *statsCache) key(userID int64) string {
	return fmt.Sprintf("%s%d", c.prefix, userID)
}

func (c *statsCache) genKey(userID int64) string {
	return fmt.Sprintf("%sgen:%d", c.prefix, userID)
}

type getter interface {
	Get(ctx context.Context, key string) *redislib.StringCmd
}

func readGeneration(ctx context.Context, cmd getter, key string) (int64, error) {
	gen, err := cmd.Get(ctx, key).Int64()
	if errors.Is(err, redislib.Nil) {
		return 0, nil
	}
	return gen, err
}
