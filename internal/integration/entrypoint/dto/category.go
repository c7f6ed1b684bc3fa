package dto

import (
	"time"

	"github.com/bill-center/backend/internal/domain/entity"
	"github.com/bill-center/backend/internal/domain/hierarchy"
)

// CreateCategoryRequest represents the request body for category creation.
// Type may be omitted for children, which inherit the parent's direction.
type CreateCategoryRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=50"`
	Type     string  `json:"type" binding:"omitempty,direction"`
	ParentID *string `json:"parent_id,omitempty" binding:"omitempty,uuid"`
	Sort     int     `json:"sort" binding:"min=0"`
	Color    string  `json:"color,omitempty" binding:"omitempty,max=20"`
	Icon     string  `json:"icon,omitempty" binding:"omitempty,max=50"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Type      string             `json:"type"`
	ParentID  *string            `json:"parent_id"`
	Sort      int                `json:"sort"`
	Icon      string             `json:"icon"`
	Color     string             `json:"color"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	Children  []CategoryResponse `json:"children,omitempty"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// DeleteResponse reports how many nodes a cascading delete removed.
type DeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(cat *entity.Category) CategoryResponse {
	var parentID *string
	if cat.ParentID != nil {
		id := cat.ParentID.String()
		parentID = &id
	}
	return CategoryResponse{
		ID:        cat.ID.String(),
		Name:      cat.Name,
		Type:      string(cat.Direction),
		ParentID:  parentID,
		Sort:      cat.Sort,
		Icon:      cat.Icon,
		Color:     cat.Color,
		CreatedAt: cat.CreatedAt,
		UpdatedAt: cat.UpdatedAt,
	}
}

// ToCategoryListResponse converts a flat category list.
func ToCategoryListResponse(categories []*entity.Category) CategoryListResponse {
	out := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		out[i] = ToCategoryResponse(cat)
	}
	return CategoryListResponse{Categories: out}
}

// ToCategoryTreeResponse converts a category forest, nesting children.
func ToCategoryTreeResponse(nodes []*hierarchy.TreeNode[*entity.Category]) CategoryListResponse {
	return CategoryListResponse{Categories: categoryTree(nodes)}
}

func categoryTree(nodes []*hierarchy.TreeNode[*entity.Category]) []CategoryResponse {
	out := make([]CategoryResponse, len(nodes))
	for i, node := range nodes {
		out[i] = ToCategoryResponse(node.Item)
		if len(node.Children) > 0 {
			out[i].Children = categoryTree(node.Children)
		}
	}
	return out
}
