package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/bill-center/backend/internal/domain/entity"
)

// ImportBatchRepository defines the interface for import batch persistence operations.
type ImportBatchRepository interface {
	// Create creates a new import batch with provisional counts.
	Create(ctx context.Context, batch *entity.ImportBatch) error

	// UpdateCounts writes the final success and fail counts.
	UpdateCounts(ctx context.Context, id uuid.UUID, successCount, failCount int) error

	// List retrieves a page of batches, newest first, with their linked row counts.
	List(ctx context.Context, offset, limit int) ([]*entity.ImportBatchWithStats, int64, error)
}
