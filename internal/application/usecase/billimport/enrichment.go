package billimport

import (
	"context"
	"log/slog"
	"time"

	"github.com/bill-center/backend/internal/application/adapter"
	"github.com/bill-center/backend/internal/domain/entity"
	domainerror "github.com/bill-center/backend/internal/domain/error"
)

// DefaultEnrichmentTimeout bounds the completion round-trip when none is configured.
const DefaultEnrichmentTimeout = 30 * time.Second

// EnrichmentStatus is the outcome of the optional enrichment step.
type EnrichmentStatus string

const (
	EnrichmentApplied EnrichmentStatus = "applied"
	EnrichmentSkipped EnrichmentStatus = "skipped"
	EnrichmentFailed  EnrichmentStatus = "failed"
)

// EnrichmentReport describes what the enrichment step did. Code and Reason are
// only set when it failed.
type EnrichmentReport struct {
	Status    EnrichmentStatus
	Code      domainerror.ImportErrorCode
	Reason    string
	Message   string
	Requested int
	Applied   int
}

// Enricher asks the completion service to classify rows the resolver left incomplete.
type Enricher struct {
	completion adapter.CompletionService
	timeout    time.Duration
}

// NewEnricher creates a new Enricher instance.
func NewEnricher(completion adapter.CompletionService, timeout time.Duration) *Enricher {
	if timeout <= 0 {
		timeout = DefaultEnrichmentTimeout
	}
	return &Enricher{
		completion: completion,
		timeout:    timeout,
	}
}

// Enrich sends one request for all rows still missing a category or tags and merges
// the reply into them. A failed call or unreadable reply leaves the rows untouched.
func (e *Enricher) Enrich(ctx context.Context, rows []*entity.ParsedRow, catalog *Catalog) *EnrichmentReport {
	pending := make([]int, 0)
	bills := make([]BillSummary, 0)
	for i, row := range rows {
		if row.NeedsEnrichment() {
			pending = append(pending, i)
			bills = append(bills, BillSummary{
				Remark:    row.Remark,
				Amount:    row.Amount,
				Direction: row.Direction,
			})
		}
	}

	if len(pending) == 0 {
		return &EnrichmentReport{
			Status:  EnrichmentSkipped,
			Message: "every row is already classified",
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	reply, err := e.completion.Complete(callCtx, buildPrompt(catalog, bills))
	if err != nil {
		failure := classifyError(err)
		slog.Warn("Enrichment request failed, continuing without it",
			"code", failure.Code, "rows", len(pending), "error", err)
		return &EnrichmentReport{
			Status:    EnrichmentFailed,
			Code:      domainerror.ErrCodeEnrichmentUnavailable,
			Reason:    failure.Code,
			Message:   failure.Message,
			Requested: len(pending),
		}
	}

	switch outcome := ParseSuggestions(reply).(type) {
	case ParseFailure:
		slog.Warn("Enrichment reply could not be parsed, continuing without it",
			"reason", outcome.Reason, "error", outcome.Err)
		return &EnrichmentReport{
			Status:    EnrichmentFailed,
			Code:      domainerror.ErrCodeEnrichmentParse,
			Reason:    ErrCodeAIParseError,
			Message:   outcome.Reason,
			Requested: len(pending),
		}
	case ParsedSuggestions:
		applied := MergeSuggestions(rows, pending, outcome.Items, catalog)
		return &EnrichmentReport{
			Status:    EnrichmentApplied,
			Requested: len(pending),
			Applied:   applied,
		}
	default:
		return &EnrichmentReport{Status: EnrichmentSkipped, Requested: len(pending)}
	}
}
