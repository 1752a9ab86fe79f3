package model

import (
	"time"

	"github.com/google/uuid"
)

// Credential is the identity-provider side of a user: e-mail and password hash.
// It shares its primary key with the Profile.
type Credential struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"` // stored lower-cased
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Credential) TableName() string { return "credentials" }
