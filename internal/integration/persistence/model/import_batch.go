package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/bill-center/backend/internal/domain/entity"
)

// ImportBatchModel represents the import_batches table in the database.
type ImportBatchModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	FileName     string    `gorm:"type:varchar(255);not null"`
	SourceTag    string    `gorm:"column:source;type:varchar(20);not null"`
	TotalCount   int       `gorm:"not null;default:0"`
	SuccessCount int       `gorm:"not null;default:0"`
	FailCount    int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null;index"`
}

// TableName returns the table name for the ImportBatchModel.
func (ImportBatchModel) TableName() string {
	return "import_batches"
}

// ToEntity converts an ImportBatchModel to a domain ImportBatch entity.
func (m *ImportBatchModel) ToEntity() *entity.ImportBatch {
	return &entity.ImportBatch{
		ID:           m.ID,
		FileName:     m.FileName,
		SourceTag:    m.SourceTag,
		TotalCount:   m.TotalCount,
		SuccessCount: m.SuccessCount,
		FailCount:    m.FailCount,
		CreatedAt:    m.CreatedAt,
	}
}

// ImportBatchFromEntity creates an ImportBatchModel from a domain ImportBatch entity.
func ImportBatchFromEntity(batch *entity.ImportBatch) *ImportBatchModel {
	return &ImportBatchModel{
		ID:           batch.ID,
		FileName:     batch.FileName,
		SourceTag:    batch.SourceTag,
		TotalCount:   batch.TotalCount,
		SuccessCount: batch.SuccessCount,
		FailCount:    batch.FailCount,
		CreatedAt:    batch.CreatedAt,
	}
}

// All returns every model managed by the application, in migration order.
func All() []interface{} {
	return []interface{}{
		&CategoryModel{},
		&TagModel{},
		&ImportBatchModel{},
		&LedgerRowModel{},
		&LedgerRowTagModel{},
	}
}
