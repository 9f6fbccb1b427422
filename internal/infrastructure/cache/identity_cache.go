package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-account-service/internal/application"
	"github.com/oksasatya/go-account-service/internal/domain/entity"
	"github.com/oksasatya/go-account-service/pkg/helpers"
)

// IdentityCache stores public projections in Redis as JSON under
// user:identity:<id>. Deleted accounts get a user:revoked:<id> marker that
// hides any identity written after it.
type IdentityCache struct {
	rdb        *redis.Client
	ttl        time.Duration
	revokedTTL time.Duration
}

// NewIdentityCache keeps revocation markers for twice the entry TTL so they
// outlive any identity written by a read that raced the delete.
func NewIdentityCache(rdb *redis.Client, ttl time.Duration) *IdentityCache {
	return &IdentityCache{rdb: rdb, ttl: ttl, revokedTTL: 2 * ttl}
}

func identityKey(userID string) string {
	return "user:identity:" + userID
}

func revokedKey(userID string) string {
	return "user:revoked:" + userID
}

// Get returns nil without error on a miss.
func (c *IdentityCache) Get(ctx context.Context, userID string) (*entity.Identity, error) {
	revoked, err := c.rdb.Exists(ctx, revokedKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	if revoked > 0 {
		return nil, application.ErrIdentityRevoked
	}

	var id entity.Identity
	found, err := helpers.RedisGetJSON(ctx, c.rdb, identityKey(userID), &id)
	if err != nil || !found {
		return nil, err
	}
	return &id, nil
}

func (c *IdentityCache) Set(ctx context.Context, id entity.Identity) error {
	return helpers.RedisSetJSON(ctx, c.rdb, identityKey(id.ID), id, c.ttl)
}

func (c *IdentityCache) Fill(ctx context.Context, id entity.Identity) error {
	_, err := helpers.RedisSetJSONNX(ctx, c.rdb, identityKey(id.ID), id, c.ttl)
	return err
}

// Invalidate marks the account revoked, then drops its entry.
func (c *IdentityCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.rdb.Set(ctx, revokedKey(userID), "1", c.revokedTTL).Err(); err != nil {
		return err
	}
	return helpers.RedisDel(ctx, c.rdb, identityKey(userID))
}

var _ application.IdentityCache = (*IdentityCache)(nil)
