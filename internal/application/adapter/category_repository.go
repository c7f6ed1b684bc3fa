// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/bill-center/backend/internal/domain/entity"
)

// CategoryFilter narrows category listings.
type CategoryFilter struct {
	Direction *entity.Direction
}

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a live category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindAll retrieves every live category ordered by sort then creation time.
	FindAll(ctx context.Context, filter CategoryFilter) ([]*entity.Category, error)

	// ExistsSibling checks if a live category with the same name, direction and parent exists.
	ExistsSibling(ctx context.Context, name string, direction entity.Direction, parentID *uuid.UUID) (bool, error)

	// SoftDeleteByIDs soft-deletes the given categories and returns how many were affected.
	SoftDeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}
