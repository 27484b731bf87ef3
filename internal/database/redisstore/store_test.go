package redisstore

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jask/skillbuilder/internal/progress"
)

var _ progress.Store = (*Store)(nil)

// Runs only against a real server: SKILLBUILDER_TEST_REDIS_ADDR=localhost:6379.
func TestStoreRoundTrip(t *testing.T) {
	addr := os.Getenv("SKILLBUILDER_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SKILLBUILDER_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	s, err := Open(ctx, addr, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	key := "kbm_test_" + uuid.NewString() + "_step_1"
	t.Cleanup(func() { _ = s.rdb.Del(context.Background(), key).Err() })

	_, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set(ctx, key, "true"))
	v, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "true", v)
}

func TestOpenFailsWithoutServer(t *testing.T) {
	_, err := Open(context.Background(), "127.0.0.1:1", 0)
	require.Error(t, err)
}
