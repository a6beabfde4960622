// ABOUTME: Tests for session stores, the provider, and token expiry decoding
// ABOUTME: Redis tests run only when CRYPTOQA_TEST_REDIS_ADDR points at a server

package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData() *Data {
	return &Data{
		Role:        "admin",
		AccessToken: "opaque",
		User:        User{ID: "u1", Email: "admin@fusetheme.com", DisplayName: "Abbott Keitch"},
	}
}

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "k", []byte(`{"a":1}`)))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	require.NoError(t, s.Set(ctx, "k", []byte(`{"a":2}`)))
	got, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(got))

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting twice is not an error
	require.NoError(t, s.Delete(ctx, "k"))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	exerciseStore(t, NewFileStore(filepath.Join(t.TempDir(), "nested")))
}

func TestFileStore_Permissions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")
	s := NewFileStore(dir)
	require.NoError(t, s.Set(context.Background(), Key, []byte("{}")))

	info, err := os.Stat(filepath.Join(dir, Key+".json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStore_RejectsPathKeys(t *testing.T) {
	s := NewFileStore(t.TempDir())
	assert.Error(t, s.Set(context.Background(), "../escape", []byte("x")))
	_, err := s.Get(context.Background(), "a/b")
	assert.Error(t, err)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("CRYPTOQA_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("CRYPTOQA_TEST_REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	exerciseStore(t, NewRedisStore(rdb, "cryptoqa-test:", time.Minute))
}

func TestProvider_RoundTrip(t *testing.T) {
	ctx := context.Background()
	p := NewProvider(NewMemoryStore())

	state, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, state)

	require.NoError(t, p.Save(ctx, sampleData()))
	state, err = p.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, "admin", state.Role())
	assert.Equal(t, "admin@fusetheme.com", state.Data.User.Email)

	require.NoError(t, p.Clear(ctx))
	state, err = p.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestProvider_PersistsUnderWellKnownKey(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, NewProvider(store).Save(context.Background(), sampleData()))

	raw, err := store.Get(context.Background(), "currentUserData")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"role": "admin",
		"access_token": "opaque",
		"user": {"id": "u1", "email": "admin@fusetheme.com", "displayName": "Abbott Keitch"}
	}`, string(raw))
}

func TestProvider_MalformedBlobIsNoSession(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), Key, []byte("{not json")))

	state, err := NewProvider(store).Load(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, state)
}

func TestProvider_HoldDoesNotPersist(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	p := NewProvider(store)

	p.Hold(sampleData())
	state, err := p.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, "u1", state.Data.User.ID)

	_, err = store.Get(ctx, Key)
	assert.ErrorIs(t, err, ErrNotFound)

	// A fresh provider over the same store sees nothing
	state, err = NewProvider(store).Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestState_TokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	}).SignedString([]byte("any-secret"))
	require.NoError(t, err)

	state := NewState(Data{AccessToken: token})
	assert.True(t, exp.Equal(state.ExpiresAt))
	assert.False(t, state.Expired(time.Now()))
	assert.True(t, state.Expired(exp.Add(time.Second)))
}

func TestState_OpaqueTokenNeverExpires(t *testing.T) {
	state := NewState(Data{AccessToken: "not-a-jwt"})
	assert.True(t, state.ExpiresAt.IsZero())
	assert.False(t, state.Expired(time.Now().Add(100*365*24*time.Hour)))
}

func TestState_NilRole(t *testing.T) {
	var s *State
	assert.Equal(t, "", s.Role())
}
