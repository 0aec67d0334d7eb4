package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { c.Close() })
	UseClient(c)
	t.Cleanup(func() { UseClient(nil) })

	ctx := context.Background()
	require.NoError(t, Set(ctx, "greeting", "hello", time.Minute))

	val, err := Get(ctx, "greeting")
	require.NoError(t, err)
	assert.Equal(t, "hello", val)
	assert.Equal(t, time.Minute, mr.TTL("greeting"))

	_, err = Get(ctx, "missing")
	assert.ErrorIs(t, err, redis.Nil)
}
