package problemcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/primary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/secondary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/domain"
)

const problemKeyPrefix = "problem:"

var _ secondary.ProblemSource = (*Cache)(nil)

// Cache decorates a ProblemSource with a Redis read-through cache. Cache
// failures degrade to the upstream source, never to an error.
type Cache struct {
	redisClient *redis.Client
	upstream    secondary.ProblemSource
	ttl         time.Duration
	logger      primary.Logger
}

// New creates a read-through problem cache
func New(redisClient *redis.Client, upstream secondary.ProblemSource, ttl time.Duration, logger primary.Logger) *Cache {
	return &Cache{
		redisClient: redisClient,
		upstream:    upstream,
		ttl:         ttl,
		logger:      logger,
	}
}

// GetProblem serves from Redis when possible, falling back to the upstream
// source and populating the cache on miss.
func (c *Cache) GetProblem(ctx context.Context, problemID string) (*domain.Problem, error) {
	key := fmt.Sprintf("%s%s", problemKeyPrefix, problemID)

	cached, err := c.redisClient.Get(ctx, key).Result()
	if err == nil {
		var problem domain.Problem
		if err := json.Unmarshal([]byte(cached), &problem); err == nil {
			return &problem, nil
		}
		c.logger.Warn("Dropping unreadable cached problem", "problemId", problemID)
		_ = c.redisClient.Del(ctx, key).Err()
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("Problem cache read failed", "problemId", problemID, "error", err)
	}

	problem, err := c.upstream.GetProblem(ctx, problemID)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(problem)
	if err != nil {
		c.logger.Error("Failed to marshal problem for cache", "problemId", problemID, "error", err)
		return problem, nil
	}
	if err := c.redisClient.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
		c.logger.Warn("Problem cache write failed", "problemId", problemID, "error", err)
	}
	return problem, nil
}
