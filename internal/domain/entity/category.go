// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Direction represents the flow direction of money for a category or ledger row.
type Direction string

const (
	DirectionIncome  Direction = "INCOME"
	DirectionExpense Direction = "EXPENSE"
)

// IsValid reports whether the direction is one of the known values.
func (d Direction) IsValid() bool {
	return d == DirectionIncome || d == DirectionExpense
}

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#6366F1"

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "tag"

// Category represents a node of the category forest.
// A child always shares the direction of its parent.
type Category struct {
	ID        uuid.UUID
	Name      string
	Direction Direction
	ParentID  *uuid.UUID
	Sort      int
	Icon      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewCategory creates a new Category entity.
// Note: Defaulting logic for color and icon should be applied in the Application layer (UseCase)
// before calling this constructor.
func NewCategory(name string, direction Direction, parentID *uuid.UUID, sort int, icon, color string) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		Name:      name,
		Direction: direction,
		ParentID:  parentID,
		Sort:      sort,
		Icon:      icon,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsTopLevel reports whether the category has no parent.
func (c *Category) IsTopLevel() bool {
	return c.ParentID == nil
}

// NodeID returns the category ID for tree construction.
func (c *Category) NodeID() uuid.UUID {
	return c.ID
}

// ParentNodeID returns the parent ID and whether one is set.
func (c *Category) ParentNodeID() (uuid.UUID, bool) {
	if c.ParentID == nil {
		return uuid.Nil, false
	}
	return *c.ParentID, true
}
