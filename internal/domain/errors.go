package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so the HTTP surface can map them to status codes.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindCatalogMiss   ErrorKind = "catalog_miss"
	KindReferenceMiss ErrorKind = "reference_miss"
	KindProvider      ErrorKind = "provider"
	KindDownload      ErrorKind = "download"
	KindUnavailable   ErrorKind = "unavailable"
	KindInternal      ErrorKind = "internal"
)

// Sentinels usable with errors.Is against any *Error of the same kind.
var (
	ErrValidation    = &Error{Kind: KindValidation}
	ErrCatalogMiss   = &Error{Kind: KindCatalogMiss}
	ErrReferenceMiss = &Error{Kind: KindReferenceMiss}
	ErrProvider      = &Error{Kind: KindProvider}
	ErrDownload      = &Error{Kind: KindDownload}
	ErrUnavailable   = &Error{Kind: KindUnavailable}
	ErrInternal      = &Error{Kind: KindInternal}
)

// Error is the typed failure returned by the generation pipeline.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Validationf builds a validation error.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// CatalogMiss reports a jersey team id that is not configured.
func CatalogMiss(teamID string) *Error {
	return &Error{Kind: KindCatalogMiss, Message: fmt.Sprintf("Team '%s' not configured", teamID)}
}

// ReferenceMissf builds a reference miss error.
func ReferenceMissf(format string, args ...any) *Error {
	return &Error{Kind: KindReferenceMiss, Message: fmt.Sprintf(format, args...)}
}

// ProviderError wraps an upstream failure with a human readable message.
func ProviderError(message string, err error) *Error {
	return &Error{Kind: KindProvider, Message: message, Err: err}
}

// DownloadError wraps an image download failure.
func DownloadError(message string, err error) *Error {
	return &Error{Kind: KindDownload, Message: message, Err: err}
}

// Unavailablef reports a subsystem that is not configured.
func Unavailablef(format string, args ...any) *Error {
	return &Error{Kind: KindUnavailable, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or KindInternal for untyped errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the user-facing message for err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	if err == nil {
		return ""
	}
	return "internal error"
}
