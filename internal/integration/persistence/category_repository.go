// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bill-center/backend/internal/application/adapter"
	"github.com/bill-center/backend/internal/domain/entity"
	domainerror "github.com/bill-center/backend/internal/domain/error"
	"github.com/bill-center/backend/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// Create creates a new category in the database.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	result := r.db.WithContext(ctx).Create(categoryModel)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return domainerror.ErrCategoryNameExists
		}
		return result.Error
	}
	return nil
}

// FindByID retrieves a live category by its ID.
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// FindAll retrieves every live category ordered by sort then creation time.
func (r *categoryRepository) FindAll(ctx context.Context, filter adapter.CategoryFilter) ([]*entity.Category, error) {
	query := r.db.WithContext(ctx)
	if filter.Direction != nil {
		query = query.Where("direction = ?", string(*filter.Direction))
	}

	var categoryModels []model.CategoryModel
	result := query.Order("sort ASC").Order("created_at ASC").Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = categoryModels[i].ToEntity()
	}
	return categories, nil
}

// ExistsSibling checks if a live category with the same name, direction and parent exists.
func (r *categoryRepository) ExistsSibling(ctx context.Context, name string, direction entity.Direction, parentID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("name = ? AND direction = ?", name, string(direction))
	query = whereParent(query, parentID)

	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SoftDeleteByIDs soft-deletes the given categories and returns how many were affected.
func (r *categoryRepository) SoftDeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.CategoryModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
