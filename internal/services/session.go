package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/daybookapp/daybook-backend/internal/database"
	"github.com/google/uuid"
)

const (
	// SessionIdleTimeout is how long a session survives without activity.
	// ValidateSession refreshes the TTL, so the timer is idle-based.
	SessionIdleTimeout = 30 * time.Minute
	// SessionKeyPrefix is the Redis key prefix for sessions
	SessionKeyPrefix = "session:"
	// PinVerifiedKeyPrefix is the Redis key prefix for per-entry PIN markers
	PinVerifiedKeyPrefix = "journal_pin:"
)

// CreateSession creates a new session for a user and stores it in Redis.
// Returns the opaque session token handed to the client.
func CreateSession(userID uuid.UUID) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	sessionToken := base64.URLEncoding.EncodeToString(tokenBytes)

	ctx := context.Background()
	sessionKey := SessionKeyPrefix + sessionToken

	err := database.RedisClient.Set(ctx, sessionKey, userID.String(), SessionIdleTimeout).Err()
	if err != nil {
		return "", err
	}

	return sessionToken, nil
}

// ValidateSession checks if a session token is valid and returns the user ID.
// A successful lookup extends the session (and therefore any PIN markers
// hanging off it keep their own clocks; they are not refreshed here).
func ValidateSession(sessionToken string) (uuid.UUID, bool, error) {
	if sessionToken == "" {
		return uuid.Nil, false, nil
	}

	ctx := context.Background()
	sessionKey := SessionKeyPrefix + sessionToken

	userIDStr, err := database.RedisClient.Get(ctx, sessionKey).Result()
	if err != nil {
		return uuid.Nil, false, nil
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false, err
	}

	// Sliding expiration: activity resets the 30-minute idle timer
	database.RedisClient.Expire(ctx, sessionKey, SessionIdleTimeout)

	return userID, true, nil
}

// InvalidateSession removes a session from Redis
func InvalidateSession(sessionToken string) error {
	if sessionToken == "" {
		return nil
	}

	ctx := context.Background()
	return database.RedisClient.Del(ctx, SessionKeyPrefix+sessionToken).Err()
}

func pinVerifiedKey(sessionToken string, entryID uuid.UUID) string {
	return fmt.Sprintf("%s%s:%s", PinVerifiedKeyPrefix, sessionToken, entryID)
}

// MarkPinVerified records that this session has unlocked the given protected
// entry. The marker is scoped per entry id and expires with the same idle
// timeout as the session itself.
func MarkPinVerified(sessionToken string, entryID uuid.UUID) error {
	ctx := context.Background()
	return database.RedisClient.Set(ctx, pinVerifiedKey(sessionToken, entryID), "verified", SessionIdleTimeout).Err()
}

// IsPinVerified reports whether this session previously verified the PIN for
// the given entry.
func IsPinVerified(sessionToken string, entryID uuid.UUID) bool {
	ctx := context.Background()
	val, err := database.RedisClient.Get(ctx, pinVerifiedKey(sessionToken, entryID)).Result()
	return err == nil && val == "verified"
}

// ClearPinVerified drops the marker, forcing the next view to re-prompt.
func ClearPinVerified(sessionToken string, entryID uuid.UUID) error {
	ctx := context.Background()
	return database.RedisClient.Del(ctx, pinVerifiedKey(sessionToken, entryID)).Err()
}
