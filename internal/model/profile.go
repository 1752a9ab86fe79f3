package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles.
const (
	RoleManager  = "Manager"
	RoleAdmin    = "Admin"
	RoleEmployee = "Employee"
)

// Profile is the stored role/tenant/balance record of a user. Its ID equals the
// identity user id. Points is only ever changed through the ledger.
type Profile struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
	// Role: "Manager" | "Admin" | "Employee"
	Role string `gorm:"type:varchar(20);not null;index:idx_profiles_ranking,priority:2"`
	// TenantID is nil for Managers
	TenantID *uuid.UUID `gorm:"type:uuid;index:idx_profiles_ranking,priority:1"`
	Name     string     `gorm:"not null"`
	Email    string     `gorm:"not null"`
	Points   int64      `gorm:"not null;default:0;index:idx_profiles_ranking,priority:3,sort:desc"`
	// IsActive is tri-state; NULL means active (see Active).
	IsActive  *bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Profile) TableName() string { return "users" }

// Active applies the uniform active-flag policy.
func (p *Profile) Active() bool { return isActive(p.IsActive) }

// BelongsTo reports whether the profile is scoped to tenantID.
func (p *Profile) BelongsTo(tenantID uuid.UUID) bool {
	return p.TenantID != nil && *p.TenantID == tenantID
}
