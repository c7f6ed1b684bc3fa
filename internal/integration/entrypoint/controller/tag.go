package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bill-center/backend/internal/application/usecase/tag"
	domainerror "github.com/bill-center/backend/internal/domain/error"
	"github.com/bill-center/backend/internal/integration/entrypoint/dto"
)

// TagController handles tag endpoints.
type TagController struct {
	listUseCase   *tag.ListTagsUseCase
	createUseCase *tag.CreateTagUseCase
	deleteUseCase *tag.DeleteTagUseCase
}

// NewTagController creates a new tag controller instance.
func NewTagController(
	listUseCase *tag.ListTagsUseCase,
	createUseCase *tag.CreateTagUseCase,
	deleteUseCase *tag.DeleteTagUseCase,
) *TagController {
	return &TagController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /tags requests.
func (c *TagController) List(ctx *gin.Context) {
	input := tag.ListTagsInput{Flat: ctx.Query("flat") == "true"}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve tags",
		})
		return
	}

	if input.Flat {
		ctx.JSON(http.StatusOK, dto.TagListResponse{Tags: dto.ToTagResponses(output.Tags)})
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTagTreeResponse(output.Tree))
}

// Create handles POST /tags requests.
func (c *TagController) Create(ctx *gin.Context) {
	var req dto.CreateTagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingTagFields),
			Details: err.Error(),
		})
		return
	}

	input := tag.CreateTagInput{
		Name:  req.Name,
		Sort:  req.Sort,
		Color: req.Color,
	}
	if req.ParentID != nil {
		parentID, err := uuid.Parse(*req.ParentID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid parent ID format",
				Code:  string(domainerror.ErrCodeMissingTagFields),
			})
			return
		}
		input.ParentID = &parentID
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTagError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTagResponse(output.Tag))
}

// Delete handles DELETE /tags/:id requests.
func (c *TagController) Delete(ctx *gin.Context) {
	tagID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid tag ID format",
		})
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), tag.DeleteTagInput{TagID: tagID})
	if err != nil {
		c.handleTagError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteResponse{Deleted: output.Deleted})
}

// handleTagError handles tag errors and returns appropriate HTTP responses.
func (c *TagController) handleTagError(ctx *gin.Context, err error) {
	var tagErr *domainerror.TagError
	if errors.As(err, &tagErr) {
		ctx.JSON(c.getStatusCodeForTagError(tagErr.Code), dto.ErrorResponse{
			Error: tagErr.Message,
			Code:  string(tagErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForTagError maps tag error codes to HTTP status codes.
func (c *TagController) getStatusCodeForTagError(code domainerror.TagErrorCode) int {
	switch code {
	case domainerror.ErrCodeTagNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeTagNameExists,
		domainerror.ErrCodeTagInUse:
		return http.StatusConflict
	case domainerror.ErrCodeTagNameTooLong,
		domainerror.ErrCodeMissingTagFields,
		domainerror.ErrCodeInvalidTagColor,
		domainerror.ErrCodeParentTagNotFound:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
