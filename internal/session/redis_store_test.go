package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb), mr
}

func testSession(id string, userID int) Session {
	now := time.Now()
	return Session{
		ID:        id,
		Token:     "token-" + id,
		User:      User{ID: userID, BranchID: 1, Name: "Asha Rao", Email: "asha@example.com", Role: "teacher"},
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestRedisStore_WriteRead(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, testSession("s1", 7)))

	got, err := store.Read(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "token-s1", got.Token)
	assert.Equal(t, "Asha Rao", got.User.Name)
	assert.True(t, mr.TTL("session:s1") > 0)
}

func TestRedisStore_ReadMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Read(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore_WriteExpired(t *testing.T) {
	store, _ := newTestStore(t)
	s := testSession("s1", 7)
	s.ExpiresAt = time.Now().Add(-time.Minute)

	assert.Error(t, store.Write(context.Background(), s))
}

func TestRedisStore_UpdateUserOverwrites(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Write(ctx, testSession("s1", 7)))
	ttlBefore := mr.TTL("session:s1")

	require.NoError(t, store.UpdateUser(ctx, "s1", User{ID: 7, Name: "Asha R.", Role: "teacher"}))

	got, err := store.Read(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Asha R.", got.User.Name)
	assert.Empty(t, got.User.Email, "user is replaced, not merged")
	assert.Equal(t, ttlBefore, mr.TTL("session:s1"))
}

func TestRedisStore_UpdateUserMissing(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.UpdateUser(context.Background(), "gone", User{ID: 1})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore_Clear(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Write(ctx, testSession("s1", 7)))
	require.NoError(t, store.Write(ctx, testSession("s2", 7)))

	require.NoError(t, store.Clear(ctx, "s1"))
	require.NoError(t, store.Clear(ctx, "s1"), "clearing twice is harmless")

	_, err := store.Read(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	members, err := mr.Members("user:7:sessions")
	require.NoError(t, err)
	assert.Equal(t, []string{"s2"}, members)
}

func TestRedisStore_ClearUser(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Write(ctx, testSession("s1", 7)))
	require.NoError(t, store.Write(ctx, testSession("s2", 7)))
	require.NoError(t, store.Write(ctx, testSession("s3", 8)))

	require.NoError(t, store.ClearUser(ctx, 7))

	for _, id := range []string{"s1", "s2"} {
		_, err := store.Read(ctx, id)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	}
	_, err := store.Read(ctx, "s3")
	assert.NoError(t, err)
}
