package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bill-center/backend/internal/application/adapter"
	domainerror "github.com/bill-center/backend/internal/domain/error"
	"github.com/bill-center/backend/internal/domain/hierarchy"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	CategoryID uuid.UUID
}

// DeleteCategoryOutput represents the output of category deletion.
type DeleteCategoryOutput struct {
	Deleted int64
}

// DeleteCategoryUseCase soft-deletes a category together with its subcategories.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	ledgerRepo   adapter.LedgerRowRepository
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository, ledgerRepo adapter.LedgerRowRepository) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
		ledgerRepo:   ledgerRepo,
	}
}

// Execute performs the category deletion. It is refused while any ledger row
// references a category of the subtree.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	if _, err := uc.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	all, err := uc.categoryRepo.FindAll(ctx, adapter.CategoryFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	ids := hierarchy.DescendantIDs(all, input.CategoryID)

	count, err := uc.ledgerRepo.CountByCategoryIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count ledger rows: %w", err)
	}
	if count > 0 {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryInUse,
			fmt.Sprintf("the category and its subcategories are used by %d ledger rows", count),
			domainerror.ErrCategoryInUse,
		)
	}

	deleted, err := uc.categoryRepo.SoftDeleteByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to delete category: %w", err)
	}

	return &DeleteCategoryOutput{
		Deleted: deleted,
	}, nil
}
