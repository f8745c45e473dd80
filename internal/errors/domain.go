package errors

import "errors"

// Kind classifies domain failures; the HTTP boundary maps each kind to a status code.
type Kind string

const (
	KindValidation  Kind = "VALIDATION"
	KindNotFound    Kind = "NOT_FOUND"
	KindAuth        Kind = "UNAUTHORIZED"
	KindForbidden   Kind = "FORBIDDEN"
	KindConflict    Kind = "CONFLICT"
	KindUnavailable Kind = "UNAVAILABLE"
)

// DomainError is a typed failure raised by services.
type DomainError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Validation reports malformed, missing or out-of-enum input.
func Validation(message string) *DomainError {
	return &DomainError{Kind: KindValidation, Message: message}
}

// NotFound reports an id with no matching record.
func NotFound(message string) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: message}
}

// Auth reports bad credentials or an unusable token.
func Auth(message string) *DomainError {
	return &DomainError{Kind: KindAuth, Message: message}
}

// Forbidden reports an authenticated caller lacking the required role.
func Forbidden(message string) *DomainError {
	return &DomainError{Kind: KindForbidden, Message: message}
}

// Conflict reports a uniqueness violation.
func Conflict(message string) *DomainError {
	return &DomainError{Kind: KindConflict, Message: message}
}

// Unavailable reports an optional collaborator that is not configured.
func Unavailable(message string) *DomainError {
	return &DomainError{Kind: KindUnavailable, Message: message}
}

// KindOf returns the kind of the first DomainError in err's chain.
func KindOf(err error) (Kind, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}
