package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bill-center/backend/internal/application/adapter"
	"github.com/bill-center/backend/internal/domain/entity"
	"github.com/bill-center/backend/internal/domain/valueobject"
	"github.com/bill-center/backend/internal/integration/persistence/model"
)

// ledgerRowRepository implements the adapter.LedgerRowRepository interface.
type ledgerRowRepository struct {
	db *gorm.DB
}

// NewLedgerRowRepository creates a new ledger row repository instance.
func NewLedgerRowRepository(db *gorm.DB) adapter.LedgerRowRepository {
	return &ledgerRowRepository{
		db: db,
	}
}

// Create persists a ledger row together with its tag links in one transaction.
func (r *ledgerRowRepository) Create(ctx context.Context, row *entity.LedgerRow) error {
	rowModel := model.LedgerRowFromEntity(row)
	links := model.TagLinksFromEntity(row)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(rowModel).Error; err != nil {
			return err
		}
		if len(links) == 0 {
			return nil
		}
		return tx.Create(&links).Error
	})
}

// ExistsByFingerprint checks if a live ledger row has the same date, amount and remark.
func (r *ledgerRowRepository) ExistsByFingerprint(ctx context.Context, fingerprint valueobject.Fingerprint) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.LedgerRowModel{}).
		Where("date = ? AND amount = ? AND remark = ?", fingerprint.Date, fingerprint.Amount, fingerprint.Remark).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// CountByCategoryIDs counts live ledger rows assigned to any of the categories.
func (r *ledgerRowRepository) CountByCategoryIDs(ctx context.Context, categoryIDs []uuid.UUID) (int64, error) {
	if len(categoryIDs) == 0 {
		return 0, nil
	}
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.LedgerRowModel{}).
		Where("category_id IN ?", categoryIDs).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// CountByTagIDs counts live ledger rows linked to any of the tags.
func (r *ledgerRowRepository) CountByTagIDs(ctx context.Context, tagIDs []uuid.UUID) (int64, error) {
	if len(tagIDs) == 0 {
		return 0, nil
	}
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.LedgerRowTagModel{}).
		Joins("JOIN ledger_rows ON ledger_rows.id = ledger_row_tags.ledger_row_id AND ledger_rows.deleted_at IS NULL").
		Where("ledger_row_tags.tag_id IN ?", tagIDs).
		Distinct("ledger_row_tags.ledger_row_id").
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
