// Package apperr defines the error kinds surfaced to API callers.
package apperr

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// invalidTextRepresentation is what postgres returns for a malformed uuid id.
const invalidTextRepresentation = "22P02"

type Kind string

const (
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindForbidden       Kind = "FORBIDDEN"
	KindNotFound        Kind = "NOT_FOUND"
	KindValidation      Kind = "VALIDATION_ERROR"
	KindConflict        Kind = "CONFLICT"
	KindTooManyRequests Kind = "TOO_MANY_REQUESTS"
	KindServer          Kind = "SERVER_ERROR"
)

var statusByKind = map[Kind]int{
	KindUnauthenticated: http.StatusUnauthorized,
	KindForbidden:       http.StatusForbidden,
	KindNotFound:        http.StatusNotFound,
	KindValidation:      http.StatusBadRequest,
	KindConflict:        http.StatusConflict,
	KindTooManyRequests: http.StatusTooManyRequests,
	KindServer:          http.StatusInternalServerError,
}

type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying cause, never shown to clients
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status is the HTTP status for the error kind.
func (e *Error) Status() int {
	if s, ok := statusByKind[e.Kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func New(kind Kind, msg string) *Error { return &Error{Kind: kind, Message: msg} }

func Unauthenticated(msg string) *Error { return New(KindUnauthenticated, msg) }
func Forbidden(msg string) *Error { return New(KindForbidden, msg) }
func NotFound(msg string) *Error { return New(KindNotFound, msg) }
func Validation(msg string) *Error { return New(KindValidation, msg) }
func Conflict(msg string) *Error { return New(KindConflict, msg) }

// Server wraps an unexpected failure behind a generic message.
func Server(err error) *Error {
	return &Error{Kind: KindServer, Message: "internal server error", Err: err}
}

// From maps any error onto an *Error. Record-not-found and ids postgres cannot
// parse become NotFound with notFoundMsg, a duplicate key becomes Conflict and
// unknown errors become ServerError.
func From(err error, notFoundMsg string) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Error{Kind: KindNotFound, Message: notFoundMsg, Err: err}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation {
		return &Error{Kind: KindNotFound, Message: notFoundMsg, Err: err}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &Error{Kind: KindConflict, Message: "record already exists", Err: err}
	}
	return Server(err)
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
