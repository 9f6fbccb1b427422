package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type session struct {
	UserID string `json:"user_id"`
}

func TestRedisJSONHelpers(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()
	rdb, err := NewRedisClient(ctx, mr.Addr(), "", 0)
	require.NoError(t, err)
	defer func() { _ = rdb.Close() }()

	require.NoError(t, RedisSetJSON(ctx, rdb, "k", session{UserID: "u1"}, time.Minute))
	assert.True(t, mr.Exists("k"))

	var got session
	ok, err := RedisGetJSON(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "u1", got.UserID)

	require.NoError(t, RedisDel(ctx, rdb, "k"))
	ok, err = RedisGetJSON(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient(context.Background(), addr, "", 0)
	assert.Error(t, err)
}
