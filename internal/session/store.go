package session

import (
	"context" // Context for Redis operations
	"strconv" // String conversion for stored user IDs
	"time"    // Session TTL

	"github.com/google/uuid"       // Opaque session tokens
	"github.com/redis/go-redis/v9" // Redis client
)

// TTL is how long a session lives without being recreated
const TTL = 24 * time.Hour

// CookieName is the cookie carrying the session token
const CookieName = "session_token"

// Store keeps session tokens in Redis, mapping each token to a user ID
type Store struct {
	rdb *redis.Client // Redis client backing the store
}

// NewStore creates a session store backed by the given Redis client
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// key builds the Redis key for a session token
func key(token string) string {
	return "session:" + token
}

// Create establishes a new session for the given user and returns its token
func (s *Store) Create(ctx context.Context, userID uint) (string, error) {
	token := uuid.NewString() // Opaque token, meaningless to the client
	// Store the user ID under the token with the session TTL
	if err := s.rdb.Set(ctx, key(token), strconv.Itoa(int(userID)), TTL).Err(); err != nil {
		return "", err // Return error if Redis write fails
	}
	return token, nil
}

// Get resolves a token to its user ID; ok is false for unknown/expired tokens
func (s *Store) Get(ctx context.Context, token string) (uint, bool, error) {
	val, err := s.rdb.Get(ctx, key(token)).Result() // Look up the token
	if err == redis.Nil {
		return 0, false, nil // No such session
	} else if err != nil {
		return 0, false, err // Other Redis error
	}
	id, err := strconv.Atoi(val) // Parse the stored user ID
	if err != nil {
		return 0, false, err // Corrupt entry
	}
	return uint(id), true, nil
}

// Destroy removes a session; destroying an absent session is not an error
func (s *Store) Destroy(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, key(token)).Err() // Delete the token key
}
