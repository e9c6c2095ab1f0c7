package apperror

import (
	"errors"
	"fmt"
)

// Machine-readable error codes. The HTTP layer maps these onto status codes;
// everything else only cares about the code, not the message text.
const (
	EINVALID    = "validation_error"
	ECONFLICT   = "conflict"
	ENOTFOUND   = "not_found"
	EGATEWAY    = "gateway_error"
	ETRANSITION = "illegal_transition"
	EREFUND     = "refund_not_allowed"
	EREFUNDAMT  = "partial_refund_exceeds"
	EDELIVERY   = "delivery_failed"
	EINTERNAL   = "internal"
)

type Error struct {
	Code    string
	Message string
	// Field names the offending input field for validation errors, if known.
	Field string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field %q)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func Invalid(field, message string) *Error {
	return &Error{Code: EINVALID, Message: message, Field: field}
}

func Conflict(message string) *Error {
	return &Error{Code: ECONFLICT, Message: message}
}

func NotFound(what, id string) *Error {
	return &Error{Code: ENOTFOUND, Message: fmt.Sprintf("%s %q not found", what, id)}
}

func Gateway(message string) *Error {
	return &Error{Code: EGATEWAY, Message: message}
}

func Transition(from, to string) *Error {
	return &Error{Code: ETRANSITION, Message: fmt.Sprintf("cannot move order from %q to %q", from, to)}
}

func RefundDenied(message string) *Error {
	return &Error{Code: EREFUND, Message: message}
}

func RefundExceeds(message string) *Error {
	return &Error{Code: EREFUNDAMT, Message: message}
}

func DeliveryFailed(message string) *Error {
	return &Error{Code: EDELIVERY, Message: message}
}

// Code extracts the application error code from err, unwrapping as needed.
// Non-application errors report EINTERNAL so handlers never leak internals.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// Message extracts a user-presentable message from err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}
