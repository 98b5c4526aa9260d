// Package apperr holds the error taxonomy shared by services and controllers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Kind int

const (
	KindStore Kind = iota
	KindValidation
	KindNotFound
	KindDuplicateAssignment
	KindConflict
	KindUnauthorized
	KindForbidden
	KindConfirmationRequired
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindDuplicateAssignment:
		return "duplicate_assignment"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindConfirmationRequired:
		return "confirmation_required"
	}
	return "store"
}

// Error carries a kind for HTTP mapping, the failing operation and a
// message that is safe to show to the user.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(op, msg string) error {
	return &Error{Kind: KindValidation, Op: op, Message: msg}
}

func NotFound(op, what string) error {
	return &Error{Kind: KindNotFound, Op: op, Message: what + " not found"}
}

func DuplicateAssignment(op string) error {
	return &Error{Kind: KindDuplicateAssignment, Op: op, Message: "location already assigned to this driver for the day"}
}

func Unauthorized(op, msg string) error {
	return &Error{Kind: KindUnauthorized, Op: op, Message: msg}
}

func Forbidden(op, msg string) error {
	return &Error{Kind: KindForbidden, Op: op, Message: msg}
}

func ConfirmationRequired(op string) error {
	return &Error{Kind: KindConfirmationRequired, Op: op, Message: "destructive operation requires confirm=true"}
}

// Store classifies a failed data-access call. Missing records become
// NotFound and unique violations become Conflict; everything else is a
// plain store failure.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Error{Kind: KindNotFound, Op: op, Message: "record not found", Err: err}
	}
	if isUniqueViolation(err) {
		return &Error{Kind: KindConflict, Op: op, Message: "record already exists", Err: err}
	}
	return &Error{Kind: KindStore, Op: op, Message: "data store request failed", Err: err}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// unique_violation from PostgreSQL when TranslateError is off
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return false
}

// KindOf reports the kind of err, KindStore for foreign errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindStore
}

func Is(err error, k Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == k
}

// Message is the user-facing text for err.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "data store request failed"
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindDuplicateAssignment, KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConfirmationRequired:
		return http.StatusPreconditionRequired
	}
	return http.StatusInternalServerError
}
