package controller

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bill-center/backend/internal/application/usecase/billimport"
	domainerror "github.com/bill-center/backend/internal/domain/error"
	"github.com/bill-center/backend/internal/integration/entrypoint/dto"
)

// BillImportController handles spreadsheet upload, import and analysis endpoints.
type BillImportController struct {
	previewUseCase *billimport.PreviewImportUseCase
	confirmUseCase *billimport.ConfirmImportUseCase
	analyzeUseCase *billimport.AnalyzeUseCase
	maxUploadBytes int64
}

// NewBillImportController creates a new bill import controller instance.
func NewBillImportController(
	previewUseCase *billimport.PreviewImportUseCase,
	confirmUseCase *billimport.ConfirmImportUseCase,
	analyzeUseCase *billimport.AnalyzeUseCase,
	maxUploadBytes int64,
) *BillImportController {
	if maxUploadBytes <= 0 {
		maxUploadBytes = billimport.DefaultMaxUploadBytes
	}
	return &BillImportController{
		previewUseCase: previewUseCase,
		confirmUseCase: confirmUseCase,
		analyzeUseCase: analyzeUseCase,
		maxUploadBytes: maxUploadBytes,
	}
}

// Preview handles POST /bills/upload/preview requests (multipart "file" and "source").
func (c *BillImportController) Preview(ctx *gin.Context) {
	input := billimport.PreviewImportInput{
		Source: ctx.PostForm("source"),
	}

	fileHeader, err := ctx.FormFile("file")
	if err == nil {
		input.FileName = fileHeader.Filename

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Failed to read uploaded file",
				Code:  string(domainerror.ErrCodeUnreadableFile),
			})
			return
		}
		defer file.Close()

		// One byte past the limit is enough for the use case to reject the upload.
		input.Data, err = io.ReadAll(io.LimitReader(file, c.maxUploadBytes+1))
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Failed to read uploaded file",
				Code:  string(domainerror.ErrCodeUnreadableFile),
			})
			return
		}
	}

	output, err := c.previewUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleImportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPreviewImportResponse(output))
}

// Confirm handles POST /bills/upload/confirm requests.
func (c *BillImportController) Confirm(ctx *gin.Context) {
	var req dto.ConfirmImportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeInvalidImportBody),
			Details: err.Error(),
		})
		return
	}

	input := billimport.ConfirmImportInput{
		FileName: req.FileName,
		Source:   req.Source,
		Enrich:   req.Enrich,
	}
	for _, row := range req.Rows {
		input.Rows = append(input.Rows, row.ToParsedRow())
	}

	output, err := c.confirmUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleImportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToImportSummaryResponse(output))
}

// Analyze handles POST /ai/analyze requests.
func (c *BillImportController) Analyze(ctx *gin.Context) {
	var req dto.AnalyzeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeInvalidImportBody),
			Details: err.Error(),
		})
		return
	}

	output, err := c.analyzeUseCase.Execute(ctx.Request.Context(), billimport.AnalyzeInput{
		Bills: req.ToBillSummaries(),
	})
	if err != nil {
		handleImportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAnalyzeResponse(output.Suggestions))
}

// handleImportError handles import errors and returns appropriate HTTP responses.
func handleImportError(ctx *gin.Context, err error) {
	var impErr *domainerror.ImportError
	if errors.As(err, &impErr) {
		statusCode := getStatusCodeForImportError(impErr.Code)
		if statusCode >= http.StatusInternalServerError {
			slog.Error("Bill import request failed", "code", impErr.Code, "error", err)
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: impErr.Message,
			Code:  string(impErr.Code),
		})
		return
	}

	slog.Error("Unexpected bill import error", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForImportError maps import error codes to HTTP status codes.
func getStatusCodeForImportError(code domainerror.ImportErrorCode) int {
	switch code {
	case domainerror.ErrCodeUnsupportedSource,
		domainerror.ErrCodeEmptyImport,
		domainerror.ErrCodeMissingFile,
		domainerror.ErrCodeUnreadableFile,
		domainerror.ErrCodeInvalidImportBody:
		return http.StatusBadRequest
	case domainerror.ErrCodeFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case domainerror.ErrCodeEnrichmentParse,
		domainerror.ErrCodeEnrichmentUnavailable:
		return http.StatusBadGateway
	case domainerror.ErrCodeEnrichmentNotConfigured:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
