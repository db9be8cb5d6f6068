package apperrors

import (
	"net/http"
)

// Factory functions and predefined variables for domain errors shared
// across services.

// ErrNotFound converts a repository not-found error (for example
// gorm.ErrRecordNotFound or a repo sentinel) into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a repository duplicate into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the generic conflict factory.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidTransition marks a query status transition the state machine
// does not allow.
func ErrInvalidTransition(domain, message string) *AppError {
	return New(CodeInvalidTransition, domain, message, http.StatusConflict)
}

// ErrStoreUnavailable marks the backing store as unreachable.
func ErrStoreUnavailable(err error) *AppError {
	return Wrap(err, CodeStoreUnavailable, "storage", "Backing store unavailable", http.StatusServiceUnavailable)
}

// --- Auth ---

var ErrPhoneAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Phone number already registered",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid phone number or password",
	http.StatusUnauthorized,
)

var ErrInvalidRoleForAccount = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid role for this account",
	http.StatusUnauthorized,
)

var ErrAccountDeactivated = New(
	CodeForbidden,
	"auth",
	"Account is deactivated",
	http.StatusForbidden,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 6 characters required.",
	http.StatusBadRequest,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Queries ---

var ErrQueryNotFound = New(
	CodeNotFound,
	"queries",
	"Query not found",
	http.StatusNotFound,
)

var ErrQueryAccessDenied = New(
	CodeForbidden,
	"queries",
	"Access to query denied",
	http.StatusForbidden,
)

var ErrQueryAlreadyAssigned = New(
	CodeConflict,
	"queries",
	"Query is already assigned to an officer",
	http.StatusConflict,
)

var ErrNotAssignedOfficer = New(
	CodeForbidden,
	"queries",
	"Only the assigned officer may reply to this query",
	http.StatusForbidden,
)

// --- Notifications ---

var ErrNotificationNotFound = New(
	CodeNotFound,
	"notifications",
	"Notification not found",
	http.StatusNotFound,
)

var ErrNotificationAccessDenied = New(
	CodeForbidden,
	"notifications",
	"Access to notification denied",
	http.StatusForbidden,
)

// --- Uploads ---

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)
