package model

import (
	"time"

	"github.com/google/uuid"
)

// Justification is a predefined reason code for a points assignment.
// A nil TenantID makes it global (visible to every tenant).
type Justification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID  *uuid.UUID `gorm:"type:uuid;index"`
	Text      string     `gorm:"not null"`
	IsActive  *bool
	CreatedAt time.Time
}

func (Justification) TableName() string { return "justifications" }

func (j *Justification) Active() bool { return isActive(j.IsActive) }

// VisibleTo reports whether the justification can be used by tenantID.
func (j *Justification) VisibleTo(tenantID uuid.UUID) bool {
	return j.TenantID == nil || *j.TenantID == tenantID
}
