package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound and ErrForbidden are matched with errors.Is by the handlers.
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)

// ValidationError is returned when a precondition fails before any write.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + ": " + e.Msg
}

func invalid(field, msg string) error { return &ValidationError{Field: field, Msg: msg} }

// Auth error codes.
const (
	AuthInvalidEmail      = "invalid-email"
	AuthUserNotFound      = "user-not-found"
	AuthWrongPassword     = "wrong-password"
	AuthInvalidCredential = "invalid-credential"
	AuthUserDisabled      = "user-disabled"
)

type AuthError struct {
	Code string
}

func (e *AuthError) Error() string { return "auth: " + e.Code }

// Message is the user-facing text for the code.
func (e *AuthError) Message() string {
	switch e.Code {
	case AuthInvalidEmail:
		return "The e-mail address is not valid"
	case AuthUserNotFound:
		return "No account exists for this e-mail"
	case AuthWrongPassword:
		return "Incorrect password"
	case AuthUserDisabled:
		return "This account has been disabled"
	default:
		return "Invalid credentials"
	}
}

// InsufficientBalanceError is returned when a redemption costs more than the
// employee's balance. No records are written in that case.
type InsufficientBalanceError struct {
	Balance  int64
	Required int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: have %d, need %d", e.Balance, e.Required)
}

// WriteError wraps a store failure that happened after validation passed.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *WriteError) Unwrap() error { return e.Err }

// ReadError wraps a store failure on a read path (e.g. a missing index).
type ReadError struct {
	Op  string
	Err error
}

func (e *ReadError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *ReadError) Unwrap() error { return e.Err }

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
