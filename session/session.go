// Package session keeps the signed-in identity on the server, keyed by an
// opaque id that travels in a cookie.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"wellness-admin/models"
)

// ErrNoSession is returned when the id is unknown or expired.
var ErrNoSession = errors.New("no session")

type Store interface {
	Save(ctx context.Context, id string, s *models.Session, ttl time.Duration) error
	Load(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

type Service struct {
	store Store
	ttl   time.Duration
}

func NewService(store Store, ttl time.Duration) *Service {
	return &Service{store: store, ttl: ttl}
}

func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Create stores sess under a fresh id and returns the id.
func (s *Service) Create(ctx context.Context, sess models.Session) (string, error) {
	id := uuid.NewString()
	if err := s.store.Save(ctx, id, &sess, s.ttl); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return id, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Session, error) {
	if id == "" {
		return nil, ErrNoSession
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNoSession
	}
	sess, err := s.store.Load(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	return sess, nil
}

func (s *Service) Clear(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
