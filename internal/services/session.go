package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/HammerMeetNail/dailycheck/internal/models"
)

const sessionKeyPrefix = "session:"

var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps sessions keyed by token hash.
type SessionStore interface {
	Put(ctx context.Context, key string, session models.Session, ttl time.Duration) error
	Get(ctx context.Context, key string) (*models.Session, error)
	Touch(ctx context.Context, key string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RedisSessionStore stores JSON-encoded sessions in Redis.
type RedisSessionStore struct {
	redis RedisClient
}

func NewRedisSessionStore(redis RedisClient) *RedisSessionStore {
	return &RedisSessionStore{redis: redis}
}

func (s *RedisSessionStore) Put(ctx context.Context, key string, session models.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKeyPrefix+key, string(data), ttl); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, key string) (*models.Session, error) {
	raw, err := s.redis.Get(ctx, sessionKeyPrefix+key)
	if errors.Is(err, ErrCacheMiss) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Touch(ctx context.Context, key string, ttl time.Duration) error {
	return s.redis.Expire(ctx, sessionKeyPrefix+key, ttl)
}

func (s *RedisSessionStore) Delete(ctx context.Context, key string) error {
	return s.redis.Del(ctx, sessionKeyPrefix+key)
}

type memorySession struct {
	session   models.Session
	expiresAt time.Time
}

// MemorySessionStore is used when Redis is disabled. Sessions are lost on
// restart.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	now      func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]memorySession),
		now:      time.Now,
	}
}

func (s *MemorySessionStore) Put(ctx context.Context, key string, session models.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key] = memorySession{session: session, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemorySessionStore) Get(ctx context.Context, key string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[key]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.sessions, key)
		return nil, ErrSessionNotFound
	}
	session := entry.session
	return &session, nil
}

func (s *MemorySessionStore) Touch(ctx context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[key]
	if !ok {
		return ErrSessionNotFound
	}
	entry.expiresAt = s.now().Add(ttl)
	s.sessions[key] = entry
	return nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
	return nil
}
