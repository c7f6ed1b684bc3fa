package entity

import (
	"time"

	"github.com/google/uuid"
)

// ImportBatch is the audit record of one upload-confirm operation.
// Only SuccessCount and FailCount change after creation.
type ImportBatch struct {
	ID           uuid.UUID
	FileName     string
	SourceTag    string
	TotalCount   int
	SuccessCount int
	FailCount    int
	CreatedAt    time.Time
}

// NewImportBatch creates a new ImportBatch entity with provisional counts.
func NewImportBatch(fileName, sourceTag string, total, success, fail int) *ImportBatch {
	return &ImportBatch{
		ID:           uuid.New(),
		FileName:     fileName,
		SourceTag:    sourceTag,
		TotalCount:   total,
		SuccessCount: success,
		FailCount:    fail,
		CreatedAt:    time.Now().UTC(),
	}
}

// ImportBatchWithStats represents an import batch with the number of rows still linked to it.
type ImportBatchWithStats struct {
	Batch    *ImportBatch
	RowCount int64
}
