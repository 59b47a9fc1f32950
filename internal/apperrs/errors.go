package apperrs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for the presentation layer: validation errors
// render inline at the form boundary, auth errors discard the attempted
// session, not-found and network errors surface as dismissible notices and
// leave the triggering modal open.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuth
	KindNotFound
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindAuth:
		return "AUTH_ERROR"
	case KindNotFound:
		return "NOT_FOUND"
	case KindNetwork:
		return "NETWORK_ERROR"
	}
	return "UNKNOWN_ERROR"
}

// Error carries a user-facing message next to the wrapped cause.
type Error struct {
	kind  Kind
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Kind() Kind { return e.kind }

// Message is the string shown to the user, without the cause chain.
func (e *Error) Message() string { return e.msg }

func Validation(msg string) error {
	return &Error{kind: KindValidation, msg: msg}
}

func Auth(msg string) error {
	return &Error{kind: KindAuth, msg: msg}
}

func NotFound(msg string) error {
	return &Error{kind: KindNotFound, msg: msg}
}

func Network(msg string, cause error) error {
	return &Error{kind: KindNetwork, msg: msg, cause: cause}
}

func kindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindUnknown
}

func IsValidation(err error) bool { return kindOf(err) == KindValidation }
func IsAuth(err error) bool       { return kindOf(err) == KindAuth }
func IsNotFound(err error) bool   { return kindOf(err) == KindNotFound }
func IsNetwork(err error) bool    { return kindOf(err) == KindNetwork }

// Message extracts the user-facing message from any error.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.msg
	}
	return err.Error()
}
