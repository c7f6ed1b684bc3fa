package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTagColor is the default color for tags.
const DefaultTagColor = "#94A3B8"

// Tag represents a node of the tag forest. Tags carry no direction.
type Tag struct {
	ID        uuid.UUID
	Name      string
	ParentID  *uuid.UUID
	Sort      int
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewTag creates a new Tag entity.
func NewTag(name string, parentID *uuid.UUID, sort int, color string) *Tag {
	now := time.Now().UTC()

	return &Tag{
		ID:        uuid.New(),
		Name:      name,
		ParentID:  parentID,
		Sort:      sort,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NodeID returns the tag ID for tree construction.
func (t *Tag) NodeID() uuid.UUID {
	return t.ID
}

// ParentNodeID returns the parent ID and whether one is set.
func (t *Tag) ParentNodeID() (uuid.UUID, bool) {
	if t.ParentID == nil {
		return uuid.Nil, false
	}
	return *t.ParentID, true
}
