package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a Backpacks error code.
type ErrorCode string

const (
	ErrInvalidRequest      ErrorCode = "INVALID_REQUEST"      // 400
	ErrNotFound            ErrorCode = "NOT_FOUND"            // 404
	ErrAmbiguousIdentifier ErrorCode = "AMBIGUOUS_IDENTIFIER" // 409
	ErrStackedBackpack     ErrorCode = "STACKED_BACKPACK"     // 409
	ErrAlreadyUpgraded     ErrorCode = "ALREADY_UPGRADED"     // 409
	ErrNotABackpack        ErrorCode = "NOT_A_BACKPACK"       // 422
	ErrCorruptMarker       ErrorCode = "CORRUPT_MARKER"       // 422
	ErrInternal            ErrorCode = "INTERNAL"             // 500
)

// BackpackError represents a structured error with code, status, and details.
type BackpackError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *BackpackError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *BackpackError {
	return &BackpackError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for an unknown container identifier.
func NewNotFound(id string) *BackpackError {
	return &BackpackError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("backpack not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewAmbiguousIdentifier creates a 409 error when a partial identifier
// matches more than one container.
func NewAmbiguousIdentifier(query string, matches []string) *BackpackError {
	return &BackpackError{
		Code:    ErrAmbiguousIdentifier,
		Status:  409,
		Message: fmt.Sprintf("%q matches %d backpacks; be more specific", query, len(matches)),
		Details: map[string]any{"query": query, "matches": matches},
	}
}

// NewStackedBackpack creates a 409 error for upgrade attempts on a stack
// of more than one backpack.
func NewStackedBackpack(count int) *BackpackError {
	return &BackpackError{
		Code:    ErrStackedBackpack,
		Status:  409,
		Message: "unstack the backpack before upgrading it",
		Details: map[string]any{"count": count},
	}
}

// NewAlreadyUpgraded creates a 409 error for upgrade attempts on a
// container already at the doubled tier.
func NewAlreadyUpgraded(capacity int) *BackpackError {
	return &BackpackError{
		Code:    ErrAlreadyUpgraded,
		Status:  409,
		Message: "this backpack is already upgraded",
		Details: map[string]any{"capacity": capacity},
	}
}

// NewNotABackpack creates a 422 error when the candidate item carries no
// container marker.
func NewNotABackpack() *BackpackError {
	return &BackpackError{
		Code:    ErrNotABackpack,
		Status:  422,
		Message: "that item is not a backpack",
	}
}

// NewCorruptMarker creates a 422 error when an item passes the container
// check but has no identifier. Identifiers are never regenerated: a fresh
// one would orphan the real storage record.
func NewCorruptMarker() *BackpackError {
	return &BackpackError{
		Code:    ErrCorruptMarker,
		Status:  422,
		Message: "this backpack's data marker is corrupt; contact an admin",
	}
}

// NewInternal creates a 500 error for unexpected internal errors. The
// user-facing message stays generic; the original error goes into Details
// for logging.
func NewInternal(err error) *BackpackError {
	details := map[string]any{}
	if err != nil {
		details["internal_error"] = err.Error()
	}
	return &BackpackError{
		Code:    ErrInternal,
		Status:  500,
		Message: "an internal error occurred",
		Details: details,
	}
}

// Is checks if an error (or any error it wraps) is a BackpackError with
// the given code.
func Is(err error, code ErrorCode) bool {
	var bErr *BackpackError
	if stderrors.As(err, &bErr) {
		return bErr.Code == code
	}
	return false
}
