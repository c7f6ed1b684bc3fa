package billimport

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bill-center/backend/internal/application/adapter"
	"github.com/bill-center/backend/internal/domain/entity"
	domainerror "github.com/bill-center/backend/internal/domain/error"
)

// AnalyzeInput represents bills to classify.
type AnalyzeInput struct {
	Bills []BillSummary
}

// AnalyzeOutput represents the normalized suggestions, addressed by position in the input.
type AnalyzeOutput struct {
	Suggestions []entity.Suggestion
}

// AnalyzeUseCase asks the completion service for category and tag suggestions
// without applying them.
type AnalyzeUseCase struct {
	categoryRepo adapter.CategoryRepository
	tagRepo      adapter.TagRepository
	completion   adapter.CompletionService
	timeout      time.Duration
}

// NewAnalyzeUseCase creates a new AnalyzeUseCase instance.
func NewAnalyzeUseCase(
	categoryRepo adapter.CategoryRepository,
	tagRepo adapter.TagRepository,
	completion adapter.CompletionService,
	timeout time.Duration,
) *AnalyzeUseCase {
	if timeout <= 0 {
		timeout = DefaultEnrichmentTimeout
	}
	return &AnalyzeUseCase{
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		completion:   completion,
		timeout:      timeout,
	}
}

// Execute performs one completion round-trip for all bills.
func (uc *AnalyzeUseCase) Execute(ctx context.Context, input AnalyzeInput) (*AnalyzeOutput, error) {
	if len(input.Bills) == 0 {
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeEmptyImport,
			"please provide bills to analyze",
			domainerror.ErrEmptyImport,
		)
	}

	if uc.completion == nil || !uc.completion.IsAvailable() {
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeEnrichmentNotConfigured,
			"no AI API key is configured",
			domainerror.ErrEnrichmentNotConfigured,
		)
	}

	catalog, err := LoadCatalog(ctx, uc.categoryRepo, uc.tagRepo)
	if err != nil {
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeImportStoreFailure,
			"failed to load categories and tags",
			err,
		)
	}

	callCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	reply, err := uc.completion.Complete(callCtx, buildPrompt(catalog, input.Bills))
	if err != nil {
		failure := classifyError(err)
		slog.Warn("Bill analysis failed", "code", failure.Code, "error", err)
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeEnrichmentUnavailable,
			failure.Message,
			fmt.Errorf("%w: %w", domainerror.ErrEnrichmentUnavailable, err),
		)
	}

	switch outcome := ParseSuggestions(reply).(type) {
	case ParsedSuggestions:
		return &AnalyzeOutput{Suggestions: outcome.Items}, nil
	case ParseFailure:
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeEnrichmentParse,
			"failed to parse AI reply: "+outcome.Reason,
			domainerror.ErrEnrichmentParse,
		)
	default:
		return &AnalyzeOutput{Suggestions: []entity.Suggestion{}}, nil
	}
}
