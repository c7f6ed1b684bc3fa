package tag

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bill-center/backend/internal/application/adapter"
	domainerror "github.com/bill-center/backend/internal/domain/error"
	"github.com/bill-center/backend/internal/domain/hierarchy"
)

// DeleteTagInput represents the input for tag deletion.
type DeleteTagInput struct {
	TagID uuid.UUID
}

// DeleteTagOutput represents the output of tag deletion.
type DeleteTagOutput struct {
	Deleted int64
}

// DeleteTagUseCase soft-deletes a tag together with its child tags.
type DeleteTagUseCase struct {
	tagRepo    adapter.TagRepository
	ledgerRepo adapter.LedgerRowRepository
}

// NewDeleteTagUseCase creates a new DeleteTagUseCase instance.
func NewDeleteTagUseCase(tagRepo adapter.TagRepository, ledgerRepo adapter.LedgerRowRepository) *DeleteTagUseCase {
	return &DeleteTagUseCase{
		tagRepo:    tagRepo,
		ledgerRepo: ledgerRepo,
	}
}

// Execute performs the tag deletion. It is refused while any ledger row links
// a tag of the subtree.
func (uc *DeleteTagUseCase) Execute(ctx context.Context, input DeleteTagInput) (*DeleteTagOutput, error) {
	if _, err := uc.tagRepo.FindByID(ctx, input.TagID); err != nil {
		if errors.Is(err, domainerror.ErrTagNotFound) {
			return nil, domainerror.NewTagError(
				domainerror.ErrCodeTagNotFound,
				"tag not found",
				domainerror.ErrTagNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}

	all, err := uc.tagRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	ids := hierarchy.DescendantIDs(all, input.TagID)

	count, err := uc.ledgerRepo.CountByTagIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count ledger rows: %w", err)
	}
	if count > 0 {
		return nil, domainerror.NewTagError(
			domainerror.ErrCodeTagInUse,
			fmt.Sprintf("the tag and its child tags are linked to %d ledger rows", count),
			domainerror.ErrTagInUse,
		)
	}

	deleted, err := uc.tagRepo.SoftDeleteByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to delete tag: %w", err)
	}

	return &DeleteTagOutput{
		Deleted: deleted,
	}, nil
}
