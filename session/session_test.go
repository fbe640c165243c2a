package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"wellness-admin/models"
)

// fakeCache is an in-memory utils.RedisClient.
type fakeCache struct {
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeCache) GetFromCache(_ context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	v, ok := f.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (f *fakeCache) SetToCache(_ context.Context, key, value string, exp time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.data[key] = value
	f.ttls[key] = exp
	return nil
}

func (f *fakeCache) DeleteFromCache(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func (f *fakeCache) Ping(context.Context) error { return f.err }
func (f *fakeCache) Close() error               { return nil }

func TestServiceLifecycle(t *testing.T) {
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"redis":  NewRedisStore(newFakeCache()),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			svc := NewService(store, time.Hour)
			ctx := context.Background()

			want := models.Session{Username: "expert", Role: "Dietitian", UserID: 42}
			id, err := svc.Create(ctx, want)
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if id == "" {
				t.Fatal("empty session id")
			}

			got, err := svc.Get(ctx, id)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if *got != want {
				t.Errorf("Get = %+v, want %+v", *got, want)
			}

			if err := svc.Clear(ctx, id); err != nil {
				t.Fatalf("Clear: %v", err)
			}
			if _, err := svc.Get(ctx, id); !errors.Is(err, ErrNoSession) {
				t.Errorf("after Clear err = %v, want ErrNoSession", err)
			}
		})
	}
}

func TestServiceRejectsMalformedIDs(t *testing.T) {
	svc := NewService(NewMemoryStore(), time.Hour)
	for _, id := range []string{"", "not-a-uuid", "../../etc/passwd"} {
		if _, err := svc.Get(context.Background(), id); !errors.Is(err, ErrNoSession) {
			t.Errorf("Get(%q) err = %v, want ErrNoSession", id, err)
		}
	}
}

func TestServiceSurfacesStoreFailures(t *testing.T) {
	cache := newFakeCache()
	svc := NewService(NewRedisStore(cache), time.Hour)
	id, err := svc.Create(context.Background(), models.Session{Username: "expert"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	cache.err = errors.New("connection refused")
	_, err = svc.Get(context.Background(), id)
	if err == nil || errors.Is(err, ErrNoSession) {
		t.Errorf("err = %v, want a store failure", err)
	}
}

func TestRedisStoreUsesTTLAndPrefix(t *testing.T) {
	cache := newFakeCache()
	svc := NewService(NewRedisStore(cache), 30*time.Minute)
	id, err := svc.Create(context.Background(), models.Session{Username: "expert"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ttl := cache.ttls["session:"+id]; ttl != 30*time.Minute {
		t.Errorf("ttl = %v, want 30m", ttl)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	ctx := context.Background()
	if err := store.Save(ctx, "a", &models.Session{Username: "expert"}, time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(ctx, "a"); err != nil {
		t.Fatalf("Load before expiry: %v", err)
	}

	now = now.Add(time.Minute)
	if _, err := store.Load(ctx, "a"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Load after expiry err = %v, want ErrNotFound", err)
	}
}
