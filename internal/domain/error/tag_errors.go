package error

import "errors"

// Tag domain errors.
var (
	// ErrTagNotFound is returned when a tag is not found in the system.
	ErrTagNotFound = errors.New("tag not found")

	// ErrTagNameExists is returned when a sibling tag with the same name already exists.
	ErrTagNameExists = errors.New("tag name already exists")

	// ErrTagNameTooLong is returned when the tag name exceeds the maximum length.
	ErrTagNameTooLong = errors.New("tag name too long")

	// ErrParentTagNotFound is returned when the requested parent tag does not exist.
	ErrParentTagNotFound = errors.New("parent tag not found")

	// ErrTagInUse is returned when ledger rows are still linked to the tag subtree.
	ErrTagInUse = errors.New("tag is linked to ledger rows")
)

// TagErrorCode defines error codes for tag errors.
// Format: TAG-XXYYYY where XX is category and YYYY is specific error.
type TagErrorCode string

const (
	ErrCodeTagNameTooLong   TagErrorCode = "TAG-010001"
	ErrCodeMissingTagFields TagErrorCode = "TAG-010002"
	ErrCodeInvalidTagColor  TagErrorCode = "TAG-010003"

	ErrCodeTagNotFound       TagErrorCode = "TAG-020001"
	ErrCodeParentTagNotFound TagErrorCode = "TAG-020002"
	ErrCodeTagNameExists     TagErrorCode = "TAG-020003"
	ErrCodeTagInUse          TagErrorCode = "TAG-020004"
)

// TagError represents a tag error with code and message.
type TagError struct {
	Code    TagErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TagError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TagError) Unwrap() error {
	return e.Err
}

// NewTagError creates a new TagError with the given code and message.
func NewTagError(code TagErrorCode, message string, err error) *TagError {
	return &TagError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
