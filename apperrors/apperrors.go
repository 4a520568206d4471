package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies an application failure. Controllers translate kinds into
// HTTP status codes exactly once, in Respond; services never touch HTTP.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindBusinessRule
	KindUpstream
	KindNotImplemented
)

// Error is the one failure type services return.
type Error struct {
	Kind    Kind
	Message string
	Err     error

	// Status overrides the kind's default HTTP status when non-zero. Used by
	// the address proxy to forward the upstream status code.
	Status int
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) *Error      { return newError(KindValidation, message) }
func Unauthenticated(message string) *Error { return newError(KindUnauthenticated, message) }
func Forbidden(message string) *Error       { return newError(KindForbidden, message) }
func NotFound(message string) *Error        { return newError(KindNotFound, message) }
func Conflict(message string) *Error        { return newError(KindConflict, message) }
func BusinessRule(message string) *Error    { return newError(KindBusinessRule, message) }
func NotImplemented(message string) *Error  { return newError(KindNotImplemented, message) }

func Upstream(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

func statusFor(e *Error) int {
	if e.Status != 0 {
		return e.Status
	}
	switch e.Kind {
	case KindValidation, KindBusinessRule:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUpstream:
		return http.StatusBadGateway
	case KindNotImplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as a JSON response. Unknown error values are treated as
// internal failures without leaking their detail to the client.
func Respond(ctx *gin.Context, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Internal("Internal server error", err)
	}
	ctx.Error(err)
	ctx.AbortWithStatusJSON(statusFor(appErr), gin.H{"detail": appErr.Message})
}
