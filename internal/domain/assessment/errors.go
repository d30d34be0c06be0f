package assessment

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindPermission ErrorKind = "permission"
	KindState      ErrorKind = "state"
	KindNotFound   ErrorKind = "not_found"
)

// DomainError is the recoverable failure surfaced to the transport layer.
// Kind selects the HTTP status; Message is safe to show to the caller.
type DomainError struct {
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

func Validationf(format string, args ...any) *DomainError {
	return &DomainError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Permissionf(format string, args ...any) *DomainError {
	return &DomainError{Kind: KindPermission, Message: fmt.Sprintf(format, args...)}
}

func Statef(format string, args ...any) *DomainError {
	return &DomainError{Kind: KindState, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the error kind when err (or anything it wraps) is a
// DomainError, and an empty kind otherwise.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
