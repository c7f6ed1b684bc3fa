// Package error defines domain-specific errors for the Bill Center application.
package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found in the system.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryNameExists is returned when a sibling with the same name and direction already exists.
	ErrCategoryNameExists = errors.New("category name already exists")

	// ErrCategoryNameTooLong is returned when the category name exceeds the maximum length.
	ErrCategoryNameTooLong = errors.New("category name too long")

	// ErrParentCategoryNotFound is returned when the requested parent does not exist.
	ErrParentCategoryNotFound = errors.New("parent category not found")

	// ErrCategoryDirectionMismatch is returned when a child direction differs from its parent.
	ErrCategoryDirectionMismatch = errors.New("category direction must match parent")

	// ErrCategoryInUse is returned when ledger rows still reference the category subtree.
	ErrCategoryInUse = errors.New("category is referenced by ledger rows")

	// ErrInvalidColorFormat is returned when the color format is invalid.
	ErrInvalidColorFormat = errors.New("invalid color format")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCategoryNameTooLong       CategoryErrorCode = "CAT-010001"
	ErrCodeInvalidColorFormat        CategoryErrorCode = "CAT-010002"
	ErrCodeInvalidCategoryDirection  CategoryErrorCode = "CAT-010003"
	ErrCodeMissingCategoryFields     CategoryErrorCode = "CAT-010004"
	ErrCodeCategoryDirectionMismatch CategoryErrorCode = "CAT-010005"

	// Lookup and state errors (02XXXX)
	ErrCodeCategoryNotFound       CategoryErrorCode = "CAT-020001"
	ErrCodeParentCategoryNotFound CategoryErrorCode = "CAT-020002"
	ErrCodeCategoryNameExists     CategoryErrorCode = "CAT-020003"
	ErrCodeCategoryInUse          CategoryErrorCode = "CAT-020004"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
