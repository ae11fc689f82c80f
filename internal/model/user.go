package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. The password hash is a
// self-describing argon2id string and is never exposed in JSON.
type User struct {
	ID           uuid.UUID `json:"user_id" gorm:"type:char(36);primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	Active       bool      `json:"active" gorm:"not null;default:true"`
	IsAdmin      bool      `json:"is_admin" gorm:"not null;default:false"`
	StorageUsed  int64     `json:"storage_used" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
