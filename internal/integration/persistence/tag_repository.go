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

// tagRepository implements the adapter.TagRepository interface.
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository instance.
func NewTagRepository(db *gorm.DB) adapter.TagRepository {
	return &tagRepository{
		db: db,
	}
}

// Create creates a new tag. A top-level name collision returns domainerror.ErrTagNameExists.
func (r *tagRepository) Create(ctx context.Context, tag *entity.Tag) error {
	tagModel := model.TagFromEntity(tag)
	result := r.db.WithContext(ctx).Create(tagModel)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return domainerror.ErrTagNameExists
		}
		return result.Error
	}
	return nil
}

// FindByID retrieves a live tag by its ID.
func (r *tagRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tag, error) {
	var tagModel model.TagModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&tagModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTagNotFound
		}
		return nil, result.Error
	}
	return tagModel.ToEntity(), nil
}

// FindAll retrieves every live tag ordered by sort then creation time.
func (r *tagRepository) FindAll(ctx context.Context) ([]*entity.Tag, error) {
	var tagModels []model.TagModel
	result := r.db.WithContext(ctx).Order("sort ASC").Order("created_at ASC").Find(&tagModels)
	if result.Error != nil {
		return nil, result.Error
	}

	tags := make([]*entity.Tag, len(tagModels))
	for i := range tagModels {
		tags[i] = tagModels[i].ToEntity()
	}
	return tags, nil
}

// FindRootByName retrieves the live top-level tag with the given name.
func (r *tagRepository) FindRootByName(ctx context.Context, name string) (*entity.Tag, error) {
	var tagModel model.TagModel
	result := r.db.WithContext(ctx).
		Where("name = ? AND parent_id IS NULL", name).
		First(&tagModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTagNotFound
		}
		return nil, result.Error
	}
	return tagModel.ToEntity(), nil
}

// ExistsSibling checks if a live tag with the same name and parent exists.
func (r *tagRepository) ExistsSibling(ctx context.Context, name string, parentID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.TagModel{}).Where("name = ?", name)
	query = whereParent(query, parentID)

	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SoftDeleteByIDs soft-deletes the given tags and returns how many were affected.
func (r *tagRepository) SoftDeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.TagModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
