package models

import (
	"time"

	"github.com/google/uuid"
)

// PasswordEntry is a stored credential. Secret holds the encrypted envelope
// ("iv:ciphertext:tag" in hex) on disk; it only ever contains plaintext
// transiently, inside a response being built for the owner.
type PasswordEntry struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	OwnerID     uuid.UUID `json:"ownerId" gorm:"type:uuid;index;not null"`
	Title       string    `json:"title" gorm:"not null;size:100"`
	Secret      string    `json:"password" gorm:"not null"`
	URL         string    `json:"url" gorm:"size:500"`
	Description string    `json:"description" gorm:"size:500"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
