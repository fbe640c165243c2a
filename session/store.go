package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"wellness-admin/models"
	"wellness-admin/utils"
)

const redisKeyPrefix = "session:"

type RedisStore struct {
	cache utils.RedisClient
}

func NewRedisStore(cache utils.RedisClient) *RedisStore {
	return &RedisStore{cache: cache}
}

func (r *RedisStore) Save(ctx context.Context, id string, s *models.Session, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return r.cache.SetToCache(ctx, redisKeyPrefix+id, string(data), ttl)
}

func (r *RedisStore) Load(ctx context.Context, id string) (*models.Session, error) {
	raw, err := r.cache.GetFromCache(ctx, redisKeyPrefix+id)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	var s models.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.cache.DeleteFromCache(ctx, redisKeyPrefix+id)
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.cache.Ping(ctx)
}

// RepositoryStore keeps sessions in the postgres sessions table.
type RepositoryStore struct {
	repo models.Repository
}

func NewRepositoryStore(repo models.Repository) *RepositoryStore {
	return &RepositoryStore{repo: repo}
}

func (r *RepositoryStore) Save(ctx context.Context, id string, s *models.Session, ttl time.Duration) error {
	return r.repo.SaveSession(ctx, id, s, ttl)
}

func (r *RepositoryStore) Load(ctx context.Context, id string) (*models.Session, error) {
	return r.repo.GetSession(ctx, id)
}

func (r *RepositoryStore) Delete(ctx context.Context, id string) error {
	return r.repo.DeleteSession(ctx, id)
}

func (r *RepositoryStore) Ping(ctx context.Context) error {
	return r.repo.Ping(ctx)
}

type memoryEntry struct {
	session   models.Session
	expiresAt time.Time
}

// MemoryStore is a process-local store for development and tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (m *MemoryStore) Save(_ context.Context, id string, s *models.Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = memoryEntry{session: *s, expiresAt: m.now().Add(ttl)}
	return nil
}

func (m *MemoryStore) Load(_ context.Context, id string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.entries, id)
		return nil, models.ErrNotFound
	}
	s := e.session
	return &s, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}
