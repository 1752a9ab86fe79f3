// Package repository holds the GORM data access layer. Services depend on the
// interfaces declared here, never on *gorm.DB directly, so they can be unit
// tested against in-memory stubs.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrNotFound is returned by Find* methods when no row matches.
var ErrNotFound = errors.New("record not found")

// ErrNotPending is returned when a ledger record is no longer in "pending"
// state and therefore cannot be transitioned again.
var ErrNotPending = errors.New("ledger record is not pending")

// ErrInsufficientPoints is returned by the conditional balance decrement when
// the profile does not hold enough points.
var ErrInsufficientPoints = errors.New("insufficient points")

// IsUniqueViolation reports whether err is a Postgres unique_violation (23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// activeOnly is the single place where the tri-state is_active policy is
// expressed in SQL: NULL counts as active.
func activeOnly(q *gorm.DB) *gorm.DB {
	return q.Where("COALESCE(is_active, true) = true")
}

func normalizePage(page, limit, def, max int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > max {
		limit = def
	}
	return page, limit
}
