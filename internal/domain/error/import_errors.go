package error

import "errors"

// Bill import domain errors.
var (
	// ErrUnsupportedSource is returned when no parser is registered for the requested source.
	ErrUnsupportedSource = errors.New("unsupported source")

	// ErrEmptyImport is returned when an import carries no rows.
	ErrEmptyImport = errors.New("no rows to import")

	// ErrMissingFile is returned when an upload carries no file content.
	ErrMissingFile = errors.New("no file uploaded")

	// ErrFileTooLarge is returned when the upload exceeds the configured size.
	ErrFileTooLarge = errors.New("file too large")

	// ErrUnreadableFile is returned when the file cannot be opened as a spreadsheet.
	ErrUnreadableFile = errors.New("unreadable spreadsheet")

	// ErrRowParse is wrapped by row-scoped parse failures.
	ErrRowParse = errors.New("row parse error")

	// ErrRowCommit is wrapped by row-scoped commit failures.
	ErrRowCommit = errors.New("row commit error")

	// ErrEnrichmentParse is returned when the completion reply is not valid JSON.
	ErrEnrichmentParse = errors.New("enrichment reply could not be parsed")

	// ErrEnrichmentUnavailable is returned when the completion call itself fails.
	ErrEnrichmentUnavailable = errors.New("enrichment service unavailable")

	// ErrEnrichmentNotConfigured is returned when enrichment is requested without a credential.
	ErrEnrichmentNotConfigured = errors.New("enrichment service not configured")
)

// ImportErrorCode defines error codes for bill import errors.
// Format: IMP-XXYYYY where XX is category and YYYY is specific error.
type ImportErrorCode string

const (
	// Input errors (01XXXX)
	ErrCodeUnsupportedSource ImportErrorCode = "IMP-010001"
	ErrCodeEmptyImport       ImportErrorCode = "IMP-010002"
	ErrCodeMissingFile       ImportErrorCode = "IMP-010003"
	ErrCodeFileTooLarge      ImportErrorCode = "IMP-010004"
	ErrCodeUnreadableFile    ImportErrorCode = "IMP-010005"
	ErrCodeInvalidImportBody ImportErrorCode = "IMP-010006"

	// Row errors (02XXXX)
	ErrCodeRowParse  ImportErrorCode = "IMP-020001"
	ErrCodeRowCommit ImportErrorCode = "IMP-020002"

	// Enrichment errors (03XXXX)
	ErrCodeEnrichmentParse         ImportErrorCode = "IMP-030001"
	ErrCodeEnrichmentUnavailable   ImportErrorCode = "IMP-030002"
	ErrCodeEnrichmentNotConfigured ImportErrorCode = "IMP-030003"

	// Store errors (04XXXX)
	ErrCodeImportStoreFailure ImportErrorCode = "IMP-040001"

	// Request errors (05XXXX)
	ErrCodeRateLimited ImportErrorCode = "IMP-050001"
)

// ImportError represents a bill import error with code and message.
type ImportError struct {
	Code    ImportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ImportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates a new ImportError with the given code and message.
func NewImportError(code ImportErrorCode, message string, err error) *ImportError {
	return &ImportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
