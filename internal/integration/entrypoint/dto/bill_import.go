package dto

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bill-center/backend/internal/application/usecase/billimport"
	"github.com/bill-center/backend/internal/domain/entity"
	domainerror "github.com/bill-center/backend/internal/domain/error"
)

// BillRow is one candidate ledger row, as previewed and as confirmed.
// Confirmed rows are not validated at binding time; a bad row fails on its own during import.
type BillRow struct {
	Date            string           `json:"date"`
	Type            string           `json:"type"`
	Amount          decimal.Decimal  `json:"amount"`
	Discount        decimal.Decimal  `json:"discount"`
	SettledAmount   *decimal.Decimal `json:"settled_amount,omitempty"`
	Remark          string           `json:"remark"`
	CategoryName    string           `json:"category_name,omitempty"`
	SubCategoryName string           `json:"sub_category_name,omitempty"`
	TagNames        []string         `json:"tag_names,omitempty"`
	CategoryID      *string          `json:"category_id,omitempty"`
	TagIDs          []string         `json:"tag_ids,omitempty"`
}

// PreviewImportResponse represents the parsed content of an upload.
type PreviewImportResponse struct {
	FileName string    `json:"file_name"`
	Source   string    `json:"source"`
	Success  bool      `json:"success"`
	Rows     []BillRow `json:"rows"`
	Errors   []string  `json:"errors"`
	Total    int       `json:"total"`
}

// ConfirmImportRequest represents the rows a user confirmed for import.
type ConfirmImportRequest struct {
	FileName string    `json:"file_name" binding:"max=255"`
	Source   string    `json:"source" binding:"max=20"`
	Enrich   bool      `json:"enrich"`
	Rows     []BillRow `json:"rows"`
}

// EnrichmentReportResponse describes the outcome of the enrichment step.
type EnrichmentReportResponse struct {
	Status    string `json:"status"`
	Code      string `json:"code,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Message   string `json:"message,omitempty"`
	Requested int    `json:"requested"`
	Applied   int    `json:"applied"`
}

// ImportSummaryResponse represents the outcome of an import.
type ImportSummaryResponse struct {
	BatchID     string                   `json:"batch_id"`
	Total       int                      `json:"total"`
	Success     int                      `json:"success"`
	Duplicates  int                      `json:"duplicates"`
	Failed      int                      `json:"failed"`
	Errors      []string                 `json:"errors"`
	Warnings    []string                 `json:"warnings"`
	Enrichment  EnrichmentReportResponse `json:"enrichment"`
	CreatedTags []TagResponse            `json:"created_tags"`
}

// AnalyzeBill is one bill submitted for classification.
type AnalyzeBill struct {
	Remark string          `json:"remark" binding:"max=500"`
	Amount decimal.Decimal `json:"amount"`
	Type   string          `json:"type" binding:"required,direction"`
}

// AnalyzeRequest represents the request body for bill analysis.
type AnalyzeRequest struct {
	Bills []AnalyzeBill `json:"bills" binding:"dive"`
}

// SuggestionResponse is one classification proposal.
type SuggestionResponse struct {
	Index        int      `json:"index"`
	CategoryID   string   `json:"category_id,omitempty"`
	CategoryName string   `json:"category_name,omitempty"`
	TagIDs       []string `json:"tag_ids"`
	TagNames     []string `json:"tag_names"`
	Confidence   *float64 `json:"confidence,omitempty"`
	Reason       string   `json:"reason,omitempty"`
}

// AnalyzeResponse represents the response for bill analysis.
type AnalyzeResponse struct {
	Suggestions []SuggestionResponse `json:"suggestions"`
}

// ToBillRow converts a parsed row to its DTO.
func ToBillRow(row *entity.ParsedRow) BillRow {
	settled := row.EffectiveSettledAmount()
	out := BillRow{
		Date:            row.Date,
		Type:            string(row.Direction),
		Amount:          row.Amount,
		Discount:        row.Discount,
		SettledAmount:   &settled,
		Remark:          row.Remark,
		CategoryName:    row.CategoryName,
		SubCategoryName: row.SubCategoryName,
		TagNames:        row.TagNames,
	}
	if row.CategoryID != nil {
		id := row.CategoryID.String()
		out.CategoryID = &id
	}
	for _, id := range row.TagIDs {
		out.TagIDs = append(out.TagIDs, id.String())
	}
	return out
}

// ToPreviewImportResponse converts a preview output to its DTO.
func ToPreviewImportResponse(output *billimport.PreviewImportOutput) PreviewImportResponse {
	rows := make([]BillRow, len(output.Rows))
	for i, row := range output.Rows {
		rows[i] = ToBillRow(row)
	}
	errs := output.Errors
	if errs == nil {
		errs = []string{}
	}
	return PreviewImportResponse{
		FileName: output.FileName,
		Source:   output.Source,
		Success:  len(output.Errors) == 0,
		Rows:     rows,
		Errors:   errs,
		Total:    output.Total,
	}
}

// ToParsedRow converts a confirmed row back into a parsed row.
// A settled amount only counts as an override when it differs from amount - discount.
// Malformed ids reject the row instead of the request.
func (r BillRow) ToParsedRow() *entity.ParsedRow {
	row := entity.NewParsedRow(
		strings.TrimSpace(r.Date),
		entity.Direction(strings.ToUpper(r.Type)),
		r.Amount,
		r.Discount,
		r.Remark,
	)
	row.CategoryName = r.CategoryName
	row.SubCategoryName = r.SubCategoryName
	row.TagNames = r.TagNames

	if r.SettledAmount != nil && !r.SettledAmount.Equal(row.SettledAmount) {
		override := *r.SettledAmount
		row.SettledOverride = &override
		row.SettledAmount = override
	}
	if r.CategoryID != nil && strings.TrimSpace(*r.CategoryID) != "" {
		id, err := uuid.Parse(strings.TrimSpace(*r.CategoryID))
		if err != nil {
			row.Reject(fmt.Errorf("%w %q", domainerror.ErrInvalidReference, *r.CategoryID))
		} else {
			row.CategoryID = &id
		}
	}
	for _, raw := range r.TagIDs {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			row.Reject(fmt.Errorf("%w %q", domainerror.ErrInvalidReference, raw))
			continue
		}
		row.AddTagIDs(id)
	}
	return row
}

// ToImportSummaryResponse converts a confirm output to its DTO.
func ToImportSummaryResponse(output *billimport.ConfirmImportOutput) ImportSummaryResponse {
	summary := output.Summary
	errs := summary.Errors
	if errs == nil {
		errs = []string{}
	}

	warnings := output.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	resp := ImportSummaryResponse{
		BatchID:     summary.BatchID.String(),
		Total:       summary.Total,
		Success:     summary.Success,
		Duplicates:  summary.Duplicates,
		Failed:      summary.Failed,
		Errors:      errs,
		Warnings:    warnings,
		CreatedTags: ToTagResponses(output.CreatedTags),
	}
	if report := output.Enrichment; report != nil {
		resp.Enrichment = EnrichmentReportResponse{
			Status:    string(report.Status),
			Code:      string(report.Code),
			Reason:    report.Reason,
			Message:   report.Message,
			Requested: report.Requested,
			Applied:   report.Applied,
		}
	}
	return resp
}

// ToBillSummaries converts analyze request bills to use case input.
func (r AnalyzeRequest) ToBillSummaries() []billimport.BillSummary {
	bills := make([]billimport.BillSummary, len(r.Bills))
	for i, b := range r.Bills {
		bills[i] = billimport.BillSummary{
			Remark:    b.Remark,
			Amount:    b.Amount,
			Direction: entity.Direction(strings.ToUpper(b.Type)),
		}
	}
	return bills
}

// ToAnalyzeResponse converts suggestions to their DTO.
func ToAnalyzeResponse(suggestions []entity.Suggestion) AnalyzeResponse {
	out := make([]SuggestionResponse, len(suggestions))
	for i, s := range suggestions {
		tagIDs := s.TagIDs
		if tagIDs == nil {
			tagIDs = []string{}
		}
		tagNames := s.TagNames
		if tagNames == nil {
			tagNames = []string{}
		}
		out[i] = SuggestionResponse{
			Index:        s.Index,
			CategoryID:   s.CategoryID,
			CategoryName: s.CategoryName,
			TagIDs:       tagIDs,
			TagNames:     tagNames,
			Confidence:   s.Confidence,
			Reason:       s.Reason,
		}
	}
	return AnalyzeResponse{Suggestions: out}
}
