package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error. Handlers translate kinds to HTTP
// statuses; services and guards only ever deal in kinds.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindSessionExpired
	KindInvalidCredential
	KindUnknownIdentity
	KindAccountDisabled
	KindForbidden
	KindNotOwner
	KindNotFound
	KindReferenceNotFound
	KindScheduleConflict
	KindRecordLocked
	KindDuplicateIdentity
	KindDuplicateCode
	KindDuplicateName
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_failed"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindSessionExpired:
		return "session_expired"
	case KindInvalidCredential:
		return "invalid_credential"
	case KindUnknownIdentity:
		return "unknown_identity"
	case KindAccountDisabled:
		return "account_disabled"
	case KindForbidden:
		return "forbidden"
	case KindNotOwner:
		return "not_owner"
	case KindNotFound:
		return "not_found"
	case KindReferenceNotFound:
		return "reference_not_found"
	case KindScheduleConflict:
		return "schedule_conflict"
	case KindRecordLocked:
		return "record_locked"
	case KindDuplicateIdentity:
		return "duplicate_identity"
	case KindDuplicateCode:
		return "duplicate_code"
	case KindDuplicateName:
		return "duplicate_name"
	default:
		return "internal_failure"
	}
}

// HTTPStatus maps a kind to the transport status used at the boundary.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindUnauthenticated, KindSessionExpired, KindInvalidCredential,
		KindUnknownIdentity, KindAccountDisabled:
		return http.StatusUnauthorized
	case KindForbidden, KindNotOwner:
		return http.StatusForbidden
	case KindNotFound, KindReferenceNotFound:
		return http.StatusNotFound
	case KindScheduleConflict, KindDuplicateIdentity, KindDuplicateCode, KindDuplicateName:
		return http.StatusConflict
	case KindValidation, KindRecordLocked:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a kind, a human-readable message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
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

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Internal wraps an unexpected storage or infrastructure failure.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal failure", Err: err}
}

// KindOf extracts the kind from any error in the chain. Unclassified errors
// report KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
