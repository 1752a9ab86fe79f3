package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Ledger record status. A record only affects a balance once it is "applied";
// the balance delta and the pending → applied transition share one transaction.
const (
	LedgerPending = "pending"
	LedgerApplied = "applied"
	LedgerFailed  = "failed"
)

// AssignmentRecord is an immutable audit entry for points granted (or deducted,
// when Amount is negative) by an Admin. Only Status/FailureReason ever change.
type AssignmentRecord struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AdminID           uuid.UUID `gorm:"type:uuid;not null"`
	AdminEmail        string    `gorm:"not null"`
	EmployeeID        uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeEmail     string    `gorm:"not null"`
	EmployeeName      string
	TenantID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount            int64     `gorm:"not null"`
	JustificationID   uuid.UUID `gorm:"type:uuid;not null"`
	JustificationText string    `gorm:"not null"`
	Status            string    `gorm:"type:varchar(10);not null;default:'pending';index"`
	FailureReason     *string
	CreatedAt         time.Time `gorm:"index"`
}

func (AssignmentRecord) TableName() string { return "points_assigned" }

// RedemptionRecord is an immutable audit entry for a reward redemption.
type RedemptionRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID    uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeEmail string    `gorm:"not null"`
	TenantID      uuid.UUID `gorm:"type:uuid;not null;index"`
	RewardID      uuid.UUID `gorm:"type:uuid;not null"`
	RewardName    string    `gorm:"not null"`
	PointsCost    int64     `gorm:"not null"`
	Status        string    `gorm:"type:varchar(10);not null;default:'pending';index"`
	FailureReason *string
	CreatedAt     time.Time `gorm:"index"`
}

func (RedemptionRecord) TableName() string { return "redemptions" }

// EntryKind tags a ledger Entry.
type EntryKind string

const (
	EntryAssignment EntryKind = "assignment"
	EntryRedemption EntryKind = "redemption"
)

// Entry is one row of a history feed: exactly one of Assignment / Redemption
// is set, as indicated by Kind.
type Entry struct {
	Kind       EntryKind
	Assignment *AssignmentRecord
	Redemption *RedemptionRecord
}

func AssignmentEntry(a *AssignmentRecord) Entry {
	return Entry{Kind: EntryAssignment, Assignment: a}
}

func RedemptionEntry(r *RedemptionRecord) Entry {
	return Entry{Kind: EntryRedemption, Redemption: r}
}

func (e Entry) ID() uuid.UUID {
	if e.Kind == EntryRedemption {
		return e.Redemption.ID
	}
	return e.Assignment.ID
}

func (e Entry) Date() time.Time {
	if e.Kind == EntryRedemption {
		return e.Redemption.CreatedAt
	}
	return e.Assignment.CreatedAt
}

// Amount is the signed balance effect: redemptions are negative.
func (e Entry) Amount() int64 {
	if e.Kind == EntryRedemption {
		return -e.Redemption.PointsCost
	}
	return e.Assignment.Amount
}

func (e Entry) Description() string {
	if e.Kind == EntryRedemption {
		return "Redeemed: " + e.Redemption.RewardName
	}
	return fmt.Sprintf("Points assigned by %s: %s", e.Assignment.AdminEmail, e.Assignment.JustificationText)
}
