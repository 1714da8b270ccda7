package storage

import (
	"context"
	"testing"
	"time"

	"blog_analyzer/internal/core"
	"blog_analyzer/pkg"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot(id string) *core.Snapshot {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &core.Snapshot{
		SessionID:      id,
		Step:           core.StepCollectingDetails,
		PendingMessage: "again",
		Fields: core.Fields{
			UserInput: "text",
			Topics:    []string{"go"},
			Sentiment: pkg.SentimentNeutral,
			Keywords:  []string{},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// exercises a store through the SessionStore contract
func runStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()

	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrSessionNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "missing"), core.ErrSessionNotFound)

	snap := testSnapshot("s1")
	require.NoError(t, store.Save(ctx, snap))

	exists, err := store.Exists(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, exists)

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, snap.SessionID, loaded.SessionID)
	assert.Equal(t, snap.Step, loaded.Step)
	assert.Equal(t, snap.PendingMessage, loaded.PendingMessage)
	assert.Equal(t, snap.Fields, loaded.Fields)
	assert.True(t, snap.CreatedAt.Equal(loaded.CreatedAt))
	assert.NotNil(t, loaded.Fields.Keywords)

	require.NoError(t, store.Delete(ctx, "s1"))
	exists, err = store.Exists(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.Error(t, store.Save(ctx, &core.Snapshot{}))
}

func TestMemorySessionStore_Contract(t *testing.T) {
	runStoreContract(t, NewMemorySessionStore(0))
}

func TestMemorySessionStore_CopiesSnapshots(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(0)
	snap := testSnapshot("s1")
	require.NoError(t, store.Save(ctx, snap))

	snap.Fields.Topics[0] = "mutated"
	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "go", loaded.Fields.Topics[0])

	loaded.Fields.Topics[0] = "mutated"
	again, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "go", again.Fields.Topics[0])
}

func TestMemorySessionStore_TTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemorySessionStore(time.Minute)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, testSnapshot("s1")))

	now = now.Add(59 * time.Second)
	_, err := store.Load(ctx, "s1")
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = store.Load(ctx, "s1")
	assert.ErrorIs(t, err, core.ErrSessionNotFound)
}

func TestRedisSessionStore_Contract(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	runStoreContract(t, NewRedisSessionStore(client, 0))
}

func TestRedisSessionStore_KeyAndTTL(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := NewRedisSessionStore(client, 10*time.Minute)
	require.NoError(t, store.Save(ctx, testSnapshot("abc")))

	assert.True(t, mr.Exists("session:abc"))
	assert.Equal(t, 10*time.Minute, mr.TTL("session:abc"))

	mr.FastForward(11 * time.Minute)
	_, err := store.Load(ctx, "abc")
	assert.ErrorIs(t, err, core.ErrSessionNotFound)
}

func TestRedisSessionStore_CorruptPayload(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	require.NoError(t, mr.Set("session:bad", "not json"))

	_, err := NewRedisSessionStore(client, 0).Load(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrSessionNotFound)
}

func TestNewRedisClient(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(ctx, "redis://"+mr.Addr())
	require.NoError(t, err)
	client.Close()

	_, err = NewRedisClient(ctx, "")
	assert.Error(t, err)

	_, err = NewRedisClient(ctx, "://bad")
	assert.Error(t, err)
}
