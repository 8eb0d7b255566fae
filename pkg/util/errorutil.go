package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes carried by DomainError.
const (
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeResourceUnavailable = "RESOURCE_UNAVAILABLE"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeNotFound            = "NOT_FOUND"
	CodeTransportFailed     = "TRANSPORT_FAILED"
	CodeInternalError       = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	UserNotice string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Notice returns the text shown to the triggering user. Transport and
// resource failures deliberately collapse to a generic message.
func (e *DomainError) Notice() string {
	if e.UserNotice != "" {
		return e.UserNotice
	}
	return e.Message
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewValidationError reports a malformed or out-of-range intake field.
// The message is shown to the submitter verbatim.
func NewValidationError(message string, details map[string]any) error {
	return &DomainError{
		Code:       CodeValidationFailed,
		Message:    message,
		UserNotice: message,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// NewResourceError reports a missing or uncreatable platform resource.
// Submitters only ever see the generic retry notice.
func NewResourceError(message string, err error) error {
	return &DomainError{
		Code:       CodeResourceUnavailable,
		Message:    message,
		UserNotice: "❌ Произошла ошибка. Попробуйте позже.",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

// NewAuthorizationError reports an actor lacking the reviewer role.
func NewAuthorizationError(notice string) error {
	return &DomainError{
		Code:       CodeUnauthorized,
		Message:    "actor lacks reviewer role",
		UserNotice: notice,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewNotFound reports a missing entity.
func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

// NewTransportError wraps a failed call across the chat-platform boundary.
func NewTransportError(operation string, err error) error {
	return &DomainError{
		Code:       CodeTransportFailed,
		Message:    fmt.Sprintf("platform call failed: %s", operation),
		UserNotice: "❌ Произошла ошибка. Попробуйте позже.",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternalError,
		Message:    "internal error",
		UserNotice: "❌ Произошла ошибка. Попробуйте позже.",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if de, ok := NewInternalError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:       CodeInternalError,
		Message:    "internal error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// IsCode reports whether err is a DomainError carrying the given code.
func IsCode(err error, code string) bool {
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		return false
	}
	return domainErr.Code == code
}

func MapError(err error) error {
	return ToDomainError(err)
}
