package models

import (
	"time"

	"github.com/google/uuid"
)

// Note content is stored as plaintext; only password secrets go through the
// codec.
type Note struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	OwnerID   uuid.UUID `json:"ownerId" gorm:"type:uuid;index;not null"`
	Title     string    `json:"title" gorm:"not null;size:100"`
	Content   string    `json:"content" gorm:"not null;size:10000"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
