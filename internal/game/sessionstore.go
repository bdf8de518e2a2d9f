package game

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Session is the ephemeral per-user game state held in Redis. A zero WordID
// means no game is active. Won and Lost are mutually exclusive and attempts
// never exceed MaxAttempts.
type Session struct {
	WordID   int  `json:"word_id"`
	Attempts int  `json:"attempts"`
	Won      bool `json:"won"`
	Lost     bool `json:"lost"`
}

// Active reports whether a game is in progress or finished for a word.
func (s *Session) Active() bool {
	return s != nil && s.WordID != 0
}

// SessionStore keeps one Session per user in Redis, expiring after the
// configured TTL. The session is scoped to a single authenticated user and is
// never shared, so plain SET/GET with last-write-wins is sufficient.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSessionStore wraps an existing Redis client.
func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

func sessionKey(userID int) string {
	return fmt.Sprintf("guessword:session:%d", userID)
}

// Get returns the user's session, or nil if none is stored.
func (s *SessionStore) Get(ctx context.Context, userID int) (*Session, error) {
	val, err := s.rdb.Get(ctx, sessionKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session lookup failed: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, fmt.Errorf("corrupt session payload: %w", err)
	}
	return &sess, nil
}

// Save stores the session, refreshing its TTL.
func (s *SessionStore) Save(ctx context.Context, userID int, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, sessionKey(userID), data, s.ttl).Err()
}

// Clear removes the session, e.g. on logout.
func (s *SessionStore) Clear(ctx context.Context, userID int) error {
	return s.rdb.Del(ctx, sessionKey(userID)).Err()
}
