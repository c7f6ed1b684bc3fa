// Package importbatch contains import batch use cases.
package importbatch

import (
	"context"

	"github.com/bill-center/backend/internal/application/adapter"
	"github.com/bill-center/backend/internal/domain/entity"
)

const (
	// DefaultPageSize is the page size used when none is requested.
	DefaultPageSize = 20
	// MaxPageSize is the largest page size served.
	MaxPageSize = 100
)

// ListImportBatchesInput represents the input for listing import batches.
type ListImportBatchesInput struct {
	Page     int
	PageSize int
}

// ListImportBatchesOutput represents one page of import batches.
type ListImportBatchesOutput struct {
	Batches    []*entity.ImportBatchWithStats
	Page       int
	PageSize   int
	Total      int64
	TotalPages int
}

// ListImportBatchesUseCase lists import batches, newest first.
type ListImportBatchesUseCase struct {
	batchRepo adapter.ImportBatchRepository
}

// NewListImportBatchesUseCase creates a new ListImportBatchesUseCase instance.
func NewListImportBatchesUseCase(batchRepo adapter.ImportBatchRepository) *ListImportBatchesUseCase {
	return &ListImportBatchesUseCase{
		batchRepo: batchRepo,
	}
}

// Execute performs the listing. Out-of-range page values are clamped.
func (uc *ListImportBatchesUseCase) Execute(ctx context.Context, input ListImportBatchesInput) (*ListImportBatchesOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	batches, total, err := uc.batchRepo.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	return &ListImportBatchesOutput{
		Batches:    batches,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}, nil
}
