// Package errors defines the typed failures web modules return to handlers.
//
// A handler never inspects backend responses directly: services translate
// them into an Error whose Kind picks the HTTP status and whose Key picks
// the localized message.
package errors

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
)

// Kind classifies a failure.
type Kind string

const (
	KindUnknown      Kind = "unknown"
	KindInvalidInput Kind = "invalid_input"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindRateLimited  Kind = "rate_limited"
	KindUnavailable  Kind = "unavailable"
)

var statusByKind = map[Kind]int{
	KindInvalidInput: http.StatusBadRequest,
	KindUnauthorized: http.StatusUnauthorized,
	KindForbidden:    http.StatusForbidden,
	KindNotFound:     http.StatusNotFound,
	KindRateLimited:  http.StatusTooManyRequests,
	KindUnavailable:  http.StatusServiceUnavailable,
}

// Error is a typed failure. Key names the catalog message for users.
// Message is operator text unless Public is set, in which case it came
// from the backend and is shown instead of Key.
type Error struct {
	Kind    Kind
	Key     string
	Message string
	Public  bool
	Err     error
}

func (e Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind)
}

func (e Error) Unwrap() error { return e.Err }

// E builds an Error without a catalog key.
func E(kind Kind, message string) error {
	return Error{Kind: kind, Message: message}
}

// EK builds an Error with a catalog key.
func EK(kind Kind, key, message string) error {
	return Error{Kind: kind, Key: strings.TrimSpace(key), Message: message}
}

// Wrap builds an Error around cause, keeping cause's text as Message.
func Wrap(kind Kind, key string, cause error) error {
	e := Error{Kind: kind, Key: strings.TrimSpace(key), Err: cause}
	if cause != nil {
		e.Message = cause.Error()
	}
	return e
}

// Rejected is an invalid-input Error carrying a backend message that may be
// shown verbatim. A blank message falls back to key.
func Rejected(key, message string) error {
	message = strings.TrimSpace(message)
	return Error{Kind: KindInvalidInput, Key: strings.TrimSpace(key), Message: message, Public: message != ""}
}

func as(err error) (Error, bool) {
	var e Error
	ok := err != nil && stderrors.As(err, &e)
	return e, ok
}

// PublicMessage returns the backend text of err when it may be displayed.
func PublicMessage(err error) (string, bool) {
	e, ok := as(err)
	if !ok || !e.Public || e.Message == "" {
		return "", false
	}
	return e.Message, true
}

// KindOf returns the Kind of err, or KindUnknown for untyped errors.
func KindOf(err error) Kind {
	if e, ok := as(err); ok {
		return e.Kind
	}
	return KindUnknown
}

// LocalizationKey returns the catalog key of err, if any.
func LocalizationKey(err error) string {
	e, _ := as(err)
	return strings.TrimSpace(e.Key)
}

// HTTPStatus maps err to a response status. Untyped deadline errors map to
// 504 and everything else unknown to 500.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	e, ok := as(err)
	if !ok {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return http.StatusGatewayTimeout
		}
		return http.StatusInternalServerError
	}
	if status, known := statusByKind[e.Kind]; known {
		return status
	}
	return http.StatusInternalServerError
}
