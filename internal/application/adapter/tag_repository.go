package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/bill-center/backend/internal/domain/entity"
)

// TagRepository defines the interface for tag persistence operations.
type TagRepository interface {
	// Create creates a new tag. A top-level name collision returns domainerror.ErrTagNameExists.
	Create(ctx context.Context, tag *entity.Tag) error

	// FindByID retrieves a live tag by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Tag, error)

	// FindAll retrieves every live tag ordered by sort then creation time.
	FindAll(ctx context.Context) ([]*entity.Tag, error)

	// FindRootByName retrieves the live top-level tag with the given name.
	FindRootByName(ctx context.Context, name string) (*entity.Tag, error)

	// ExistsSibling checks if a live tag with the same name and parent exists.
	ExistsSibling(ctx context.Context, name string, parentID *uuid.UUID) (bool, error)

	// SoftDeleteByIDs soft-deletes the given tags and returns how many were affected.
	SoftDeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}
