package billimport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bill-center/backend/internal/application/adapter"
	"github.com/bill-center/backend/internal/domain/entity"
	domainerror "github.com/bill-center/backend/internal/domain/error"
)

// ResolveStats reports what a resolution pass changed.
// Warnings lists, per row, the tags that could not be resolved.
type ResolveStats struct {
	CategoriesResolved int
	CreatedTags        []*entity.Tag
	Warnings           []string
}

// Resolver maps free-text category and tag names to catalog ids.
// Rows are resolved one after another so each new tag name is created at most once.
type Resolver struct {
	tagRepo adapter.TagRepository
}

// NewResolver creates a new Resolver instance.
func NewResolver(tagRepo adapter.TagRepository) *Resolver {
	return &Resolver{
		tagRepo: tagRepo,
	}
}

// Resolve fills CategoryID and TagIDs on rows in place. Ids already present on a row are kept.
// A tag that cannot be created is left off the row and reported in the warnings.
func (r *Resolver) Resolve(ctx context.Context, rows []*entity.ParsedRow, catalog *Catalog) *ResolveStats {
	stats := &ResolveStats{CreatedTags: make([]*entity.Tag, 0), Warnings: make([]string, 0)}
	tagIDs := make(map[string]uuid.UUID)

	for _, row := range rows {
		if row.NeedsCategory() {
			if id, ok := resolveCategory(row, catalog); ok {
				row.CategoryID = &id
				stats.CategoriesResolved++
			}
		}

		for _, name := range row.TagNames {
			if name == "" {
				continue
			}
			if id, ok := tagIDs[name]; ok {
				row.AddTagIDs(id)
				continue
			}

			tag, created, err := r.findOrCreateTag(ctx, name, catalog)
			if err != nil {
				slog.Warn("Failed to resolve tag", "tag", name, "error", err)
				stats.Warnings = append(stats.Warnings,
					fmt.Sprintf("tag skipped: %s %s %q - %v", row.Date, row.Amount.String(), name, err))
				continue
			}
			if created {
				stats.CreatedTags = append(stats.CreatedTags, tag)
				slog.Debug("Created tag during import", "tag", name, "tagID", tag.ID)
			}

			tagIDs[name] = tag.ID
			row.AddTagIDs(tag.ID)
		}
	}

	return stats
}

// resolveCategory prefers a subcategory named after the row's subcategory over a
// top-level category named after the row's category. Both must share the row's direction.
func resolveCategory(row *entity.ParsedRow, catalog *Catalog) (uuid.UUID, bool) {
	if cat, ok := catalog.findCategory(row.SubCategoryName, row.Direction, false); ok {
		return cat.ID, true
	}
	if cat, ok := catalog.findCategory(row.CategoryName, row.Direction, true); ok {
		return cat.ID, true
	}
	return uuid.Nil, false
}

func (r *Resolver) findOrCreateTag(ctx context.Context, name string, catalog *Catalog) (*entity.Tag, bool, error) {
	if tag, ok := catalog.findTag(name); ok {
		return tag, false, nil
	}

	tag := entity.NewTag(name, nil, 0, entity.DefaultTagColor)
	err := r.tagRepo.Create(ctx, tag)
	if err == nil {
		catalog.addTag(tag)
		return tag, true, nil
	}
	if !errors.Is(err, domainerror.ErrTagNameExists) {
		return nil, false, fmt.Errorf("failed to create tag: %w", err)
	}

	// Another import created the same root tag after the catalog was loaded.
	existing, findErr := r.tagRepo.FindRootByName(ctx, name)
	if findErr != nil {
		return nil, false, fmt.Errorf("failed to load concurrently created tag: %w", findErr)
	}
	catalog.addTag(existing)
	return existing, false, nil
}
