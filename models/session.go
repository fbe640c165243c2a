package models

import "time"

// Session is the identity of the signed-in user.
type Session struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	UserID   int64  `json:"userId"`
}

// SessionRecord is the postgres row behind a session cookie.
type SessionRecord struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Username  string    `gorm:"not null"`
	Role      string    `gorm:"not null"`
	UserID    int64     `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

func (SessionRecord) TableName() string {
	return "sessions"
}
