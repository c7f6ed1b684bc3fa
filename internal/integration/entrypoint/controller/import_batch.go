package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bill-center/backend/internal/application/usecase/importbatch"
	"github.com/bill-center/backend/internal/integration/entrypoint/dto"
)

// ImportBatchController handles import batch audit endpoints.
type ImportBatchController struct {
	listUseCase *importbatch.ListImportBatchesUseCase
}

// NewImportBatchController creates a new import batch controller instance.
func NewImportBatchController(listUseCase *importbatch.ListImportBatchesUseCase) *ImportBatchController {
	return &ImportBatchController{
		listUseCase: listUseCase,
	}
}

// List handles GET /import-batches requests (query: page, page_size).
// Unparseable values fall back to the defaults.
func (c *ImportBatchController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.Query("page"))
	pageSize, _ := strconv.Atoi(ctx.Query("page_size"))

	output, err := c.listUseCase.Execute(ctx.Request.Context(), importbatch.ListImportBatchesInput{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve import batches",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToImportBatchListResponse(output))
}
