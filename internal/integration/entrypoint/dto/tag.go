package dto

import (
	"time"

	"github.com/bill-center/backend/internal/domain/entity"
	"github.com/bill-center/backend/internal/domain/hierarchy"
)

// CreateTagRequest represents the request body for tag creation.
type CreateTagRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=50"`
	ParentID *string `json:"parent_id,omitempty" binding:"omitempty,uuid"`
	Sort     int     `json:"sort" binding:"min=0"`
	Color    string  `json:"color,omitempty" binding:"omitempty,max=20"`
}

// TagResponse represents a single tag in API responses.
type TagResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	ParentID  *string       `json:"parent_id"`
	Sort      int           `json:"sort"`
	Color     string        `json:"color"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Children  []TagResponse `json:"children,omitempty"`
}

// TagListResponse represents the response for listing tags.
type TagListResponse struct {
	Tags []TagResponse `json:"tags"`
}

// ToTagResponse converts a domain Tag entity to a TagResponse DTO.
func ToTagResponse(tag *entity.Tag) TagResponse {
	var parentID *string
	if tag.ParentID != nil {
		id := tag.ParentID.String()
		parentID = &id
	}
	return TagResponse{
		ID:        tag.ID.String(),
		Name:      tag.Name,
		ParentID:  parentID,
		Sort:      tag.Sort,
		Color:     tag.Color,
		CreatedAt: tag.CreatedAt,
		UpdatedAt: tag.UpdatedAt,
	}
}

// ToTagResponses converts a flat tag list, never returning nil.
func ToTagResponses(tags []*entity.Tag) []TagResponse {
	out := make([]TagResponse, len(tags))
	for i, tag := range tags {
		out[i] = ToTagResponse(tag)
	}
	return out
}

// ToTagTreeResponse converts a tag forest, nesting children.
func ToTagTreeResponse(nodes []*hierarchy.TreeNode[*entity.Tag]) TagListResponse {
	return TagListResponse{Tags: tagTree(nodes)}
}

func tagTree(nodes []*hierarchy.TreeNode[*entity.Tag]) []TagResponse {
	out := make([]TagResponse, len(nodes))
	for i, node := range nodes {
		out[i] = ToTagResponse(node.Item)
		if len(node.Children) > 0 {
			out[i].Children = tagTree(node.Children)
		}
	}
	return out
}
