package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bill-center/backend/internal/domain/entity"
)

// TagModel represents the tags table in the database.
// Live top-level names are unique; nested names are only checked per parent by the use case.
type TagModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name      string         `gorm:"type:varchar(50);not null;index:idx_tags_root_name,unique,where:parent_id IS NULL AND deleted_at IS NULL"`
	ParentID  *uuid.UUID     `gorm:"type:uuid;index"`
	Sort      int            `gorm:"not null;default:0"`
	Color     string         `gorm:"type:varchar(20);default:'#94A3B8'"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for the TagModel.
func (TagModel) TableName() string {
	return "tags"
}

// ToEntity converts a TagModel to a domain Tag entity.
func (m *TagModel) ToEntity() *entity.Tag {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Tag{
		ID:        m.ID,
		Name:      m.Name,
		ParentID:  m.ParentID,
		Sort:      m.Sort,
		Color:     m.Color,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: deletedAt,
	}
}

// TagFromEntity creates a TagModel from a domain Tag entity.
func TagFromEntity(tag *entity.Tag) *TagModel {
	var deletedAt gorm.DeletedAt
	if tag.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *tag.DeletedAt, Valid: true}
	}

	return &TagModel{
		ID:        tag.ID,
		Name:      tag.Name,
		ParentID:  tag.ParentID,
		Sort:      tag.Sort,
		Color:     tag.Color,
		CreatedAt: tag.CreatedAt,
		UpdatedAt: tag.UpdatedAt,
		DeletedAt: deletedAt,
	}
}
