// Package billimport contains the bill upload, enrichment and import use cases.
package billimport

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bill-center/backend/internal/application/adapter"
	"github.com/bill-center/backend/internal/domain/entity"
	"github.com/bill-center/backend/internal/domain/hierarchy"
)

// Catalog is the snapshot of categories and tags one pipeline invocation works against.
// Tags created during the invocation are added to it.
type Catalog struct {
	Categories []*entity.Category
	Tags       []*entity.Tag

	categories *hierarchy.Arena[uuid.UUID, *entity.Category]
	tagsByID   map[uuid.UUID]*entity.Tag
}

// NewCatalog indexes the given categories and tags.
func NewCatalog(categories []*entity.Category, tags []*entity.Tag) *Catalog {
	c := &Catalog{
		Categories: categories,
		Tags:       make([]*entity.Tag, 0, len(tags)),
		categories: hierarchy.NewArena[uuid.UUID](categories),
		tagsByID:   make(map[uuid.UUID]*entity.Tag, len(tags)),
	}
	for _, tag := range tags {
		c.addTag(tag)
	}
	return c
}

// LoadCatalog reads every live category and tag.
func LoadCatalog(ctx context.Context, categoryRepo adapter.CategoryRepository, tagRepo adapter.TagRepository) (*Catalog, error) {
	categories, err := categoryRepo.FindAll(ctx, adapter.CategoryFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	tags, err := tagRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}

	return NewCatalog(categories, tags), nil
}

// Category returns the category with the given id.
func (c *Catalog) Category(id uuid.UUID) (*entity.Category, bool) {
	return c.categories.Get(id)
}

// Tag returns the tag with the given id.
func (c *Catalog) Tag(id uuid.UUID) (*entity.Tag, bool) {
	tag, ok := c.tagsByID[id]
	return tag, ok
}

// findCategory returns the first category with the exact name and direction on the requested level.
func (c *Catalog) findCategory(name string, direction entity.Direction, topLevel bool) (*entity.Category, bool) {
	if name == "" {
		return nil, false
	}
	for _, cat := range c.Categories {
		if cat.Name == name && cat.Direction == direction && cat.IsTopLevel() == topLevel {
			return cat, true
		}
	}
	return nil, false
}

// findCategoryByName matches any level, preferring subcategories.
func (c *Catalog) findCategoryByName(name string, direction entity.Direction) (*entity.Category, bool) {
	if cat, ok := c.findCategory(name, direction, false); ok {
		return cat, true
	}
	return c.findCategory(name, direction, true)
}

// findTag returns the first tag with the exact name anywhere in the forest.
func (c *Catalog) findTag(name string) (*entity.Tag, bool) {
	for _, tag := range c.Tags {
		if tag.Name == name {
			return tag, true
		}
	}
	return nil, false
}

func (c *Catalog) addTag(tag *entity.Tag) {
	if _, exists := c.tagsByID[tag.ID]; exists {
		return
	}
	c.Tags = append(c.Tags, tag)
	c.tagsByID[tag.ID] = tag
}
