package billimport

import (
	"context"
	"fmt"
	"strings"

	"github.com/bill-center/backend/internal/application/adapter"
	"github.com/bill-center/backend/internal/domain/entity"
	domainerror "github.com/bill-center/backend/internal/domain/error"
)

const (
	// DefaultSource is used when an upload does not name its source.
	DefaultSource = "YIMU"
	// DefaultMaxUploadBytes is the upload size limit when none is configured.
	DefaultMaxUploadBytes int64 = 10 << 20
)

// PreviewImportInput represents an uploaded spreadsheet.
type PreviewImportInput struct {
	FileName string
	Source   string
	Data     []byte
}

// PreviewImportOutput represents the parsed rows of an upload.
type PreviewImportOutput struct {
	FileName string
	Source   string
	Rows     []*entity.ParsedRow
	Errors   []string
	Total    int
}

// PreviewImportUseCase parses an upload without persisting anything.
type PreviewImportUseCase struct {
	registry      adapter.ParserRegistry
	defaultSource string
	maxBytes      int64
}

// NewPreviewImportUseCase creates a new PreviewImportUseCase instance.
func NewPreviewImportUseCase(registry adapter.ParserRegistry, defaultSource string, maxBytes int64) *PreviewImportUseCase {
	if defaultSource == "" {
		defaultSource = DefaultSource
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &PreviewImportUseCase{
		registry:      registry,
		defaultSource: defaultSource,
		maxBytes:      maxBytes,
	}
}

// Execute parses the upload with the parser registered for its source.
func (uc *PreviewImportUseCase) Execute(_ context.Context, input PreviewImportInput) (*PreviewImportOutput, error) {
	if len(input.Data) == 0 {
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeMissingFile,
			"please upload a file",
			domainerror.ErrMissingFile,
		)
	}

	if int64(len(input.Data)) > uc.maxBytes {
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeFileTooLarge,
			fmt.Sprintf("file must not exceed %d bytes", uc.maxBytes),
			domainerror.ErrFileTooLarge,
		)
	}

	source := strings.TrimSpace(input.Source)
	if source == "" {
		source = uc.defaultSource
	}

	parser, err := uc.registry.Get(source)
	if err != nil {
		return nil, err
	}

	result, err := parser.Parse(input.Data)
	if err != nil {
		return nil, err
	}

	return &PreviewImportOutput{
		FileName: input.FileName,
		Source:   parser.Source(),
		Rows:     result.Rows,
		Errors:   result.Errors,
		Total:    result.Total,
	}, nil
}
