package tag

import (
	"context"

	"github.com/google/uuid"

	"github.com/bill-center/backend/internal/application/adapter"
	"github.com/bill-center/backend/internal/domain/entity"
	"github.com/bill-center/backend/internal/domain/hierarchy"
)

// ListTagsInput represents the input for listing tags.
type ListTagsInput struct {
	Flat bool
}

// ListTagsOutput represents the output of listing tags.
type ListTagsOutput struct {
	Tags []*entity.Tag
	Tree []*hierarchy.TreeNode[*entity.Tag]
}

// ListTagsUseCase handles listing tags logic.
type ListTagsUseCase struct {
	tagRepo adapter.TagRepository
}

// NewListTagsUseCase creates a new ListTagsUseCase instance.
func NewListTagsUseCase(tagRepo adapter.TagRepository) *ListTagsUseCase {
	return &ListTagsUseCase{
		tagRepo: tagRepo,
	}
}

// Execute performs the tag listing.
func (uc *ListTagsUseCase) Execute(ctx context.Context, input ListTagsInput) (*ListTagsOutput, error) {
	tags, err := uc.tagRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	output := &ListTagsOutput{
		Tags: tags,
		Tree: make([]*hierarchy.TreeNode[*entity.Tag], 0),
	}
	if !input.Flat {
		output.Tree = hierarchy.BuildTree[uuid.UUID](tags)
	}

	return output, nil
}
