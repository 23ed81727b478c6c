package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/jobhunt/internal/jobsearch"
	"github.com/jonathan/jobhunt/internal/logging"
)

// DefaultSessionTTL is how long an idle search session is kept.
const DefaultSessionTTL = 30 * time.Minute

// Sessions stores server-held search sessions. Every Put restarts the
// session's time to live.
type Sessions interface {
	GetSession(ctx context.Context, id string) (*jobsearch.Session, error)
	PutSession(ctx context.Context, s *jobsearch.Session) error
	DeleteSession(ctx context.Context, id string) error
	Close() error
}

type memorySession struct {
	data    []byte
	expires time.Time
}

// MemorySessions keeps sessions in process memory. A cron janitor removes
// expired entries; reads also treat them as missing.
type MemorySessions struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	ttl      time.Duration
	now      func() time.Time
	janitor  *cron.Cron
	logger   logrus.FieldLogger
}

// NewMemorySessions creates a MemorySessions with the given ttl and starts its
// janitor on a one-minute schedule.
func NewMemorySessions(ttl time.Duration, logger logrus.FieldLogger) (*MemorySessions, error) {
	return newMemorySessions(ttl, logger, time.Now)
}

func newMemorySessions(ttl time.Duration, logger logrus.FieldLogger, now func() time.Time) (*MemorySessions, error) {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if logger == nil {
		logger = logging.Discard()
	}
	m := &MemorySessions{
		sessions: make(map[string]memorySession),
		ttl:      ttl,
		now:      now,
		janitor:  cron.New(),
		logger:   logger.WithField("component", "sessions"),
	}
	if _, err := m.janitor.AddFunc("@every 1m", func() { m.Sweep() }); err != nil {
		return nil, fmt.Errorf("failed to schedule session janitor: %w", err)
	}
	m.janitor.Start()
	return m, nil
}

func (m *MemorySessions) GetSession(_ context.Context, id string) (*jobsearch.Session, error) {
	m.mu.Lock()
	entry, ok := m.sessions[id]
	if ok && !m.now().Before(entry.expires) {
		delete(m.sessions, id)
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}

	var s jobsearch.Session
	if err := json.Unmarshal(entry.data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &s, nil
}

func (m *MemorySessions) PutSession(_ context.Context, s *jobsearch.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	m.mu.Lock()
	m.sessions[s.ID] = memorySession{data: data, expires: m.now().Add(m.ttl)}
	m.mu.Unlock()
	return nil
}

func (m *MemorySessions) DeleteSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	delete(m.sessions, id)
	return nil
}

// Sweep removes expired sessions and returns how many were removed.
func (m *MemorySessions) Sweep() int {
	now := m.now()
	m.mu.Lock()
	removed := 0
	for id, entry := range m.sessions {
		if !now.Before(entry.expires) {
			delete(m.sessions, id)
			removed++
		}
	}
	m.mu.Unlock()

	if removed > 0 {
		m.logger.WithField("removed", removed).Debug("expired sessions swept")
	}
	return removed
}

// Close stops the janitor.
func (m *MemorySessions) Close() error {
	<-m.janitor.Stop().Done()
	return nil
}

// RedisSessions stores each session as a JSON value under
// jobhunt:session:<id> with a TTL.
type RedisSessions struct {
	rdb *redis.Client
	ttl time.Duration
}

const sessionKeyPrefix = "jobhunt:session:"

// NewRedisClient parses redisURL and verifies the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

// NewRedisSessions wraps an existing client.
func NewRedisSessions(rdb *redis.Client, ttl time.Duration) *RedisSessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &RedisSessions{rdb: rdb, ttl: ttl}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (r *RedisSessions) GetSession(ctx context.Context, id string) (*jobsearch.Session, error) {
	data, err := r.rdb.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var s jobsearch.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &s, nil
}

func (r *RedisSessions) PutSession(ctx context.Context, s *jobsearch.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := r.rdb.Set(ctx, sessionKey(s.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *RedisSessions) DeleteSession(ctx context.Context, id string) error {
	n, err := r.rdb.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return nil
}

// Close closes the Redis client.
func (r *RedisSessions) Close() error {
	return r.rdb.Close()
}
