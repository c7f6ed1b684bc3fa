// Package category contains category-related use cases.
package category

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/bill-center/backend/internal/application/adapter"
	"github.com/bill-center/backend/internal/domain/entity"
	domainerror "github.com/bill-center/backend/internal/domain/error"
)

const (
	// MaxCategoryNameLength is the maximum allowed length for category names.
	MaxCategoryNameLength = 50
	// MaxIconLength is the maximum allowed length for icon names.
	MaxIconLength = 50
)

// hexColorRegex is compiled once at package level for performance.
var hexColorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	Name      string
	Direction entity.Direction // Optional for children, inherited from the parent
	ParentID  *uuid.UUID
	Sort      int
	Color     string // Optional, defaults to DefaultCategoryColor
	Icon      string // Optional, defaults to DefaultCategoryIcon
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryFields,
			"category name is required",
			nil,
		)
	}

	if utf8.RuneCountInString(name) > MaxCategoryNameLength {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}

	if input.Color != "" && !isValidHexColor(input.Color) {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidColorFormat,
			"color must be a valid hex format (#XXXXXX)",
			domainerror.ErrInvalidColorFormat,
		)
	}

	// Apply default values for optional fields (Application layer responsibility)
	color := input.Color
	if color == "" {
		color = entity.DefaultCategoryColor
	}
	icon := input.Icon
	if icon == "" {
		icon = entity.DefaultCategoryIcon
	}
	if len(icon) > MaxIconLength {
		icon = icon[:MaxIconLength]
	}

	direction := input.Direction
	if input.ParentID != nil {
		parent, err := uc.categoryRepo.FindByID(ctx, *input.ParentID)
		if err != nil {
			if errors.Is(err, domainerror.ErrCategoryNotFound) {
				return nil, domainerror.NewCategoryError(
					domainerror.ErrCodeParentCategoryNotFound,
					"parent category not found",
					domainerror.ErrParentCategoryNotFound,
				)
			}
			return nil, fmt.Errorf("failed to find parent category: %w", err)
		}

		if direction == "" {
			direction = parent.Direction
		}
		if direction != parent.Direction {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryDirectionMismatch,
				"a subcategory must have the same type as its parent",
				domainerror.ErrCategoryDirectionMismatch,
			)
		}
	}

	if !direction.IsValid() {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryDirection,
			"category type must be 'INCOME' or 'EXPENSE'",
			domainerror.ErrInvalidDirection,
		)
	}

	exists, err := uc.categoryRepo.ExistsSibling(ctx, name, direction, input.ParentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameExists,
			"a category with this name already exists at this level",
			domainerror.ErrCategoryNameExists,
		)
	}

	category := entity.NewCategory(name, direction, input.ParentID, input.Sort, icon, color)

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CreateCategoryOutput{
		Category: category,
	}, nil
}

// isValidHexColor validates hex color format (#XXXXXX or #XXX).
func isValidHexColor(color string) bool {
	return hexColorRegex.MatchString(color)
}
