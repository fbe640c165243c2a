package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type Repository interface {
	SaveSession(ctx context.Context, id string, s *Session, ttl time.Duration) error
	GetSession(ctx context.Context, id string) (*Session, error)
	DeleteSession(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Close() error
}

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&SessionRecord{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) SaveSession(ctx context.Context, id string, s *Session, ttl time.Duration) error {
	rec := &SessionRecord{
		ID:        id,
		Username:  s.Username,
		Role:      s.Role,
		UserID:    s.UserID,
		ExpiresAt: time.Now().Add(ttl),
	}
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *PostgresRepository) GetSession(ctx context.Context, id string) (*Session, error) {
	var rec SessionRecord
	err := r.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", id, time.Now()).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &Session{Username: rec.Username, Role: rec.Role, UserID: rec.UserID}, nil
}

func (r *PostgresRepository) DeleteSession(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&SessionRecord{}, "id = ?", id).Error
}

// PurgeExpired removes sessions past their expiry and reports how many went.
func (r *PostgresRepository) PurgeExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= ?", time.Now()).Delete(&SessionRecord{})
	return res.RowsAffected, res.Error
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *PostgresRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
