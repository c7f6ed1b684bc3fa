// Package tag contains tag-related use cases.
package tag

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

// MaxTagNameLength is the maximum allowed length for tag names.
const MaxTagNameLength = 50

var hexColorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// CreateTagInput represents the input for tag creation.
type CreateTagInput struct {
	Name     string
	ParentID *uuid.UUID
	Sort     int
	Color    string // Optional, defaults to DefaultTagColor
}

// CreateTagOutput represents the output of tag creation.
type CreateTagOutput struct {
	Tag *entity.Tag
}

// CreateTagUseCase handles tag creation logic.
type CreateTagUseCase struct {
	tagRepo adapter.TagRepository
}

// NewCreateTagUseCase creates a new CreateTagUseCase instance.
func NewCreateTagUseCase(tagRepo adapter.TagRepository) *CreateTagUseCase {
	return &CreateTagUseCase{
		tagRepo: tagRepo,
	}
}

// Execute performs the tag creation.
func (uc *CreateTagUseCase) Execute(ctx context.Context, input CreateTagInput) (*CreateTagOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewTagError(domainerror.ErrCodeMissingTagFields, "tag name is required", nil)
	}

	if utf8.RuneCountInString(name) > MaxTagNameLength {
		return nil, domainerror.NewTagError(
			domainerror.ErrCodeTagNameTooLong,
			fmt.Sprintf("tag name must not exceed %d characters", MaxTagNameLength),
			domainerror.ErrTagNameTooLong,
		)
	}

	color := input.Color
	if color == "" {
		color = entity.DefaultTagColor
	}
	if !hexColorRegex.MatchString(color) {
		return nil, domainerror.NewTagError(
			domainerror.ErrCodeInvalidTagColor,
			"color must be a valid hex format (#XXXXXX)",
			domainerror.ErrInvalidColorFormat,
		)
	}

	if input.ParentID != nil {
		if _, err := uc.tagRepo.FindByID(ctx, *input.ParentID); err != nil {
			if errors.Is(err, domainerror.ErrTagNotFound) {
				return nil, domainerror.NewTagError(
					domainerror.ErrCodeParentTagNotFound,
					"parent tag not found",
					domainerror.ErrParentTagNotFound,
				)
			}
			return nil, fmt.Errorf("failed to find parent tag: %w", err)
		}
	}

	exists, err := uc.tagRepo.ExistsSibling(ctx, name, input.ParentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check tag name existence: %w", err)
	}
	if exists {
		return nil, nameExistsError()
	}

	tag := entity.NewTag(name, input.ParentID, input.Sort, color)
	if err := uc.tagRepo.Create(ctx, tag); err != nil {
		if errors.Is(err, domainerror.ErrTagNameExists) {
			return nil, nameExistsError()
		}
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	return &CreateTagOutput{
		Tag: tag,
	}, nil
}

func nameExistsError() error {
	return domainerror.NewTagError(
		domainerror.ErrCodeTagNameExists,
		"a tag with this name already exists at this level",
		domainerror.ErrTagNameExists,
	)
}
