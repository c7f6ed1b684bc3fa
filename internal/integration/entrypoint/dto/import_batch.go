package dto

import (
	"time"

	"github.com/bill-center/backend/internal/application/usecase/importbatch"
)

// ImportBatchResponse represents one import batch in API responses.
type ImportBatchResponse struct {
	ID           string    `json:"id"`
	FileName     string    `json:"file_name"`
	Source       string    `json:"source"`
	TotalCount   int       `json:"total_count"`
	SuccessCount int       `json:"success_count"`
	FailCount    int       `json:"fail_count"`
	RowCount     int64     `json:"row_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// ImportBatchListResponse represents one page of import batches.
type ImportBatchListResponse struct {
	Batches    []ImportBatchResponse `json:"batches"`
	Pagination PaginationResponse    `json:"pagination"`
}

// ToImportBatchListResponse converts a listing output to its DTO.
func ToImportBatchListResponse(output *importbatch.ListImportBatchesOutput) ImportBatchListResponse {
	batches := make([]ImportBatchResponse, len(output.Batches))
	for i, item := range output.Batches {
		b := item.Batch
		batches[i] = ImportBatchResponse{
			ID:           b.ID.String(),
			FileName:     b.FileName,
			Source:       b.SourceTag,
			TotalCount:   b.TotalCount,
			SuccessCount: b.SuccessCount,
			FailCount:    b.FailCount,
			RowCount:     item.RowCount,
			CreatedAt:    b.CreatedAt,
		}
	}
	return ImportBatchListResponse{
		Batches: batches,
		Pagination: PaginationResponse{
			Page:       output.Page,
			PageSize:   output.PageSize,
			Total:      output.Total,
			TotalPages: output.TotalPages,
		},
	}
}
