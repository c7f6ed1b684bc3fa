package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bill-center/backend/internal/application/adapter"
	"github.com/bill-center/backend/internal/domain/entity"
	"github.com/bill-center/backend/internal/integration/persistence/model"
)

// importBatchRepository implements the adapter.ImportBatchRepository interface.
type importBatchRepository struct {
	db *gorm.DB
}

// NewImportBatchRepository creates a new import batch repository instance.
func NewImportBatchRepository(db *gorm.DB) adapter.ImportBatchRepository {
	return &importBatchRepository{
		db: db,
	}
}

// Create creates a new import batch with provisional counts.
func (r *importBatchRepository) Create(ctx context.Context, batch *entity.ImportBatch) error {
	return r.db.WithContext(ctx).Create(model.ImportBatchFromEntity(batch)).Error
}

// UpdateCounts writes the final success and fail counts.
func (r *importBatchRepository) UpdateCounts(ctx context.Context, id uuid.UUID, successCount, failCount int) error {
	result := r.db.WithContext(ctx).
		Model(&model.ImportBatchModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"success_count": successCount,
			"fail_count":    failCount,
		})
	return result.Error
}

// batchRowCount is the scan target for the per-batch row count query.
type batchRowCount struct {
	ImportBatchID uuid.UUID
	RowCount      int64
}

// List retrieves a page of batches, newest first, with their linked live row counts.
func (r *importBatchRepository) List(ctx context.Context, offset, limit int) ([]*entity.ImportBatchWithStats, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.ImportBatchModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var batchModels []model.ImportBatchModel
	result := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&batchModels)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	if len(batchModels) == 0 {
		return []*entity.ImportBatchWithStats{}, total, nil
	}

	ids := make([]uuid.UUID, len(batchModels))
	for i := range batchModels {
		ids[i] = batchModels[i].ID
	}

	var counts []batchRowCount
	result = r.db.WithContext(ctx).
		Model(&model.LedgerRowModel{}).
		Select("import_batch_id, COUNT(*) AS row_count").
		Where("import_batch_id IN ?", ids).
		Group("import_batch_id").
		Scan(&counts)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	countByBatch := make(map[uuid.UUID]int64, len(counts))
	for _, c := range counts {
		countByBatch[c.ImportBatchID] = c.RowCount
	}

	batches := make([]*entity.ImportBatchWithStats, len(batchModels))
	for i := range batchModels {
		batches[i] = &entity.ImportBatchWithStats{
			Batch:    batchModels[i].ToEntity(),
			RowCount: countByBatch[batchModels[i].ID],
		}
	}
	return batches, total, nil
}
