package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrVerificationRequired = errors.New("email verification required")
	ErrForbidden            = errors.New("access forbidden")
	ErrNotFound             = errors.New("not found")
	ErrBackend              = errors.New("backend request failed")

	ErrNoDraftIdentity     = errors.New("draft project has not been saved yet")
	ErrIncomplete          = errors.New("project is not complete")
	ErrOperationInProgress = errors.New("another operation is in progress")
	ErrWizardClosed        = errors.New("submission wizard is closed")
	ErrInvalidStep         = errors.New("action not allowed on the current step")
	ErrNoActiveWizard      = errors.New("no submission in progress")
)

// ValidationError carries per-field messages for inline rendering. It is
// never produced by a backend call.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// BackendError is the normalised failure of a backend call. Status is zero
// for transport failures such as timeouts.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("backend unavailable: %s", e.Message)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// Unwrap lets callers match on the coarse category with errors.Is.
func (e *BackendError) Unwrap() error {
	switch e.Status {
	case 401:
		return ErrUnauthorized
	case 403:
		return ErrForbidden
	case 404:
		return ErrNotFound
	default:
		return ErrBackend
	}
}
