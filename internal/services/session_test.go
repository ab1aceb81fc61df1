package services

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/daybookapp/daybook-backend/internal/database"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockRedis(t *testing.T) *miniredis.Miniredis {
	mr := miniredis.RunT(t)
	prev := database.RedisClient
	database.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		database.RedisClient.Close()
		database.RedisClient = prev
	})
	return mr
}

func TestSessionLifecycle(t *testing.T) {
	setupMockRedis(t)
	userID := uuid.New()

	token, err := CreateSession(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, ok, err := ValidateSession(token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, userID, got)

	require.NoError(t, InvalidateSession(token))

	_, ok, err = ValidateSession(token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionIdleTimeoutSlides(t *testing.T) {
	mr := setupMockRedis(t)
	userID := uuid.New()

	token, err := CreateSession(userID)
	require.NoError(t, err)

	// Activity just before the deadline refreshes the timer
	mr.FastForward(SessionIdleTimeout - time.Minute)
	_, ok, err := ValidateSession(token)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(SessionIdleTimeout - time.Minute)
	_, ok, err = ValidateSession(token)
	require.NoError(t, err)
	assert.True(t, ok)

	// A full idle window with no activity ends the session
	mr.FastForward(SessionIdleTimeout + time.Second)
	_, ok, err = ValidateSession(token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPinVerifiedMarkerScopedPerEntryAndSession(t *testing.T) {
	setupMockRedis(t)
	entryA := uuid.New()
	entryB := uuid.New()

	require.NoError(t, MarkPinVerified("token-1", entryA))

	// Once verified, repeat views in the same session skip the prompt
	assert.True(t, IsPinVerified("token-1", entryA))

	// Other entries and other sessions still prompt
	assert.False(t, IsPinVerified("token-1", entryB))
	assert.False(t, IsPinVerified("token-2", entryA))

	require.NoError(t, ClearPinVerified("token-1", entryA))
	assert.False(t, IsPinVerified("token-1", entryA))
}

func TestPinVerifiedMarkerExpires(t *testing.T) {
	mr := setupMockRedis(t)
	entryID := uuid.New()

	require.NoError(t, MarkPinVerified("token-1", entryID))
	assert.True(t, IsPinVerified("token-1", entryID))

	mr.FastForward(SessionIdleTimeout + time.Second)
	assert.False(t, IsPinVerified("token-1", entryID))
}
