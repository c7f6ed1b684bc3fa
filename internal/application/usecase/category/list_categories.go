package category

import (
	"context"

	"github.com/google/uuid"

	"github.com/bill-center/backend/internal/application/adapter"
	"github.com/bill-center/backend/internal/domain/entity"
	"github.com/bill-center/backend/internal/domain/hierarchy"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	Direction *entity.Direction // Optional filter by direction
	Flat      bool
}

// ListCategoriesOutput represents the output of listing categories.
// Tree is empty when a flat listing was requested.
type ListCategoriesOutput struct {
	Categories []*entity.Category
	Tree       []*hierarchy.TreeNode[*entity.Category]
}

// ListCategoriesUseCase handles listing categories logic.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category listing.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	categories, err := uc.categoryRepo.FindAll(ctx, adapter.CategoryFilter{Direction: input.Direction})
	if err != nil {
		return nil, err
	}

	output := &ListCategoriesOutput{
		Categories: categories,
		Tree:       make([]*hierarchy.TreeNode[*entity.Category], 0),
	}
	if !input.Flat {
		output.Tree = hierarchy.BuildTree[uuid.UUID](categories)
	}

	return output, nil
}
