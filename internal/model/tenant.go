package model

import (
	"time"

	"github.com/google/uuid"
)

// Tenant status values.
const (
	TenantActive         = "active"
	TenantInactive       = "inactive"
	TenantPendingPayment = "pending_payment"
)

// Tenant is a company account. Tenants are never hard-deleted: deactivation
// flips Status to "inactive".
type Tenant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	Status    string    `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Tenant) TableName() string { return "companies" }
