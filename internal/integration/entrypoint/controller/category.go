package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bill-center/backend/internal/application/usecase/category"
	"github.com/bill-center/backend/internal/domain/entity"
	domainerror "github.com/bill-center/backend/internal/domain/error"
	"github.com/bill-center/backend/internal/integration/entrypoint/dto"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	listUseCase   *category.ListCategoriesUseCase
	createUseCase *category.CreateCategoryUseCase
	deleteUseCase *category.DeleteCategoryUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	listUseCase *category.ListCategoriesUseCase,
	createUseCase *category.CreateCategoryUseCase,
	deleteUseCase *category.DeleteCategoryUseCase,
) *CategoryController {
	return &CategoryController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /categories requests.
// Query parameters: type (INCOME|EXPENSE) and flat (true returns no nesting).
func (c *CategoryController) List(ctx *gin.Context) {
	input := category.ListCategoriesInput{
		Flat: ctx.Query("flat") == "true",
	}

	if categoryType := ctx.Query("type"); categoryType != "" {
		direction := entity.Direction(strings.ToUpper(categoryType))
		if !direction.IsValid() {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category type",
				Code:  string(domainerror.ErrCodeInvalidCategoryDirection),
			})
			return
		}
		input.Direction = &direction
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve categories",
		})
		return
	}

	if input.Flat {
		ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output.Categories))
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCategoryTreeResponse(output.Tree))
}

// Create handles POST /categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingCategoryFields),
			Details: err.Error(),
		})
		return
	}

	input := category.CreateCategoryInput{
		Name:      req.Name,
		Direction: entity.Direction(strings.ToUpper(req.Type)),
		Sort:      req.Sort,
		Color:     req.Color,
		Icon:      req.Icon,
	}
	if req.ParentID != nil {
		parentID, err := uuid.Parse(*req.ParentID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid parent ID format",
				Code:  string(domainerror.ErrCodeMissingCategoryFields),
			})
			return
		}
		input.ParentID = &parentID
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(output.Category))
}

// Delete handles DELETE /categories/:id requests.
// The category and all of its descendants are soft-deleted together.
func (c *CategoryController) Delete(ctx *gin.Context) {
	categoryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), category.DeleteCategoryInput{
		CategoryID: categoryID,
	})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteResponse{Deleted: output.Deleted})
}

// handleCategoryError handles category errors and returns appropriate HTTP responses.
func (c *CategoryController) handleCategoryError(ctx *gin.Context, err error) {
	var catErr *domainerror.CategoryError
	if errors.As(err, &catErr) {
		statusCode := c.getStatusCodeForCategoryError(catErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: catErr.Message,
			Code:  string(catErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForCategoryError maps category error codes to HTTP status codes.
func (c *CategoryController) getStatusCodeForCategoryError(code domainerror.CategoryErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCategoryNameExists,
		domainerror.ErrCodeCategoryInUse:
		return http.StatusConflict
	case domainerror.ErrCodeCategoryNameTooLong,
		domainerror.ErrCodeInvalidColorFormat,
		domainerror.ErrCodeInvalidCategoryDirection,
		domainerror.ErrCodeMissingCategoryFields,
		domainerror.ErrCodeCategoryDirectionMismatch,
		domainerror.ErrCodeParentCategoryNotFound:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
