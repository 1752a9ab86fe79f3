package model

import (
	"time"

	"github.com/google/uuid"
)

// Reward is something an employee can redeem points for.
type Reward struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"not null"`
	PointsRequired int64     `gorm:"not null"`
	IsActive       *bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Reward) TableName() string { return "rewards" }

func (r *Reward) Active() bool { return isActive(r.IsActive) }
