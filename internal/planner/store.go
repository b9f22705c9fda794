package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Store persists planner sessions. Concurrent saves of one session are
// last-write-wins.
type Store interface {
	Load(ctx context.Context, id string) (Session, error)
	Save(ctx context.Context, s Session) error
}

func sessionKey(id string) string {
	return "planner:session:" + id
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, id string) (Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Session{}, err
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sess Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(sess.ID), raw, max(s.ttl, 0)).Err()
}

type MemoryStore struct {
	sessions *gocache.Cache
	ttl      time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &MemoryStore{sessions: gocache.New(ttl, 10*time.Minute), ttl: ttl}
}

func (s *MemoryStore) Load(_ context.Context, id string) (Session, error) {
	v, ok := s.sessions.Get(sessionKey(id))
	if !ok {
		return Session{}, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	var sess Session
	if err := json.Unmarshal(v.([]byte), &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *MemoryStore) Save(_ context.Context, sess Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	s.sessions.Set(sessionKey(sess.ID), raw, s.ttl)
	return nil
}
