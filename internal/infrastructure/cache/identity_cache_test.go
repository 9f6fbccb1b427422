package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-account-service/internal/application"
	"github.com/oksasatya/go-account-service/internal/domain/entity"
)

func newCache(t *testing.T) (*IdentityCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewIdentityCache(rdb, time.Minute), mr
}

func TestIdentityCache_SetGetInvalidate(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)

	got, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)

	id := entity.Identity{ID: "u1", Name: "Ann", Email: "ann@x.com"}
	require.NoError(t, c.Set(ctx, id))
	assert.True(t, mr.Exists("user:identity:u1"))
	assert.Equal(t, time.Minute, mr.TTL("user:identity:u1"))

	got, err = c.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, *got)

	require.NoError(t, c.Invalidate(ctx, "u1"))
	assert.False(t, mr.Exists("user:identity:u1"))
	got, err = c.Get(ctx, "u1")
	assert.ErrorIs(t, err, application.ErrIdentityRevoked)
	assert.Nil(t, got)
}

func TestIdentityCache_RevocationWinsOverLateWrites(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)
	id := entity.Identity{ID: "u1", Name: "Ann", Email: "ann@x.com"}

	require.NoError(t, c.Invalidate(ctx, "u1"))
	// a request that read the row before the delete finishes afterwards
	require.NoError(t, c.Fill(ctx, id))
	require.NoError(t, c.Set(ctx, id))

	_, err := c.Get(ctx, "u1")
	assert.ErrorIs(t, err, application.ErrIdentityRevoked)
	assert.Equal(t, 2*time.Minute, mr.TTL("user:revoked:u1"))
}

func TestIdentityCache_FillKeepsNewerEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := newCache(t)

	require.NoError(t, c.Set(ctx, entity.Identity{ID: "u1", Name: "Annie", Email: "ann@x.com"}))
	require.NoError(t, c.Fill(ctx, entity.Identity{ID: "u1", Name: "Ann", Email: "ann@x.com"}))

	got, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Annie", got.Name)
}

func TestIdentityCache_Expires(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)

	require.NoError(t, c.Set(ctx, entity.Identity{ID: "u1", Name: "Ann", Email: "ann@x.com"}))
	mr.FastForward(2 * time.Minute)

	got, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestIdentityCache_CorruptValue(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)

	require.NoError(t, mr.Set("user:identity:u1", "{not json"))
	_, err := c.Get(ctx, "u1")
	assert.Error(t, err)
}
