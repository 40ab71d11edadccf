package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server-side login session. ID is the opaque token handed to the
// client; it carries no decodable payload.
type Session struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	Username  string    `json:"username" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null"`
}
