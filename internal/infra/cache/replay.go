package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const replayPrefix = "replay:"

// ReplayGuard remembers one-time tokens for a while. Claim succeeds only for
// the first caller presenting a given token.
type ReplayGuard struct {
	client *redis.Client
}

func NewReplayGuard(client *redis.Client) *ReplayGuard {
	return &ReplayGuard{client: client}
}

func (g *ReplayGuard) Claim(ctx context.Context, token string, ttl time.Duration) (bool, error) {
	return g.client.SetNX(ctx, replayPrefix+token, 1, ttl).Result()
}
