package billimport

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/bill-center/backend/internal/application/adapter"
	"github.com/bill-center/backend/internal/domain/entity"
	domainerror "github.com/bill-center/backend/internal/domain/error"
)

// ConfirmImportConfig tunes the import pipeline.
type ConfirmImportConfig struct {
	DefaultSource     string
	EnrichmentTimeout time.Duration
	CommitWorkers     int
	DuplicateWorkers  int
}

// ConfirmImportInput represents the rows a user confirmed for import.
// Rows may already carry a category, tags or a settled amount override.
type ConfirmImportInput struct {
	FileName string
	Source   string
	Enrich   bool
	Rows     []*entity.ParsedRow
}

// ConfirmImportOutput represents the outcome of an import.
// Warnings are row-level problems that did not stop the row from being imported.
type ConfirmImportOutput struct {
	Summary     *ImportSummary
	Enrichment  *EnrichmentReport
	CreatedTags []*entity.Tag
	Warnings    []string
}

// ConfirmImportUseCase runs resolve, optional enrichment, duplicate detection and commit.
type ConfirmImportUseCase struct {
	categoryRepo  adapter.CategoryRepository
	tagRepo       adapter.TagRepository
	completion    adapter.CompletionService
	resolver      *Resolver
	enricher      *Enricher
	detector      *DuplicateDetector
	committer     *Committer
	defaultSource string
}

// NewConfirmImportUseCase creates a new ConfirmImportUseCase instance.
// completion may be nil when no completion service is configured.
func NewConfirmImportUseCase(
	categoryRepo adapter.CategoryRepository,
	tagRepo adapter.TagRepository,
	ledgerRepo adapter.LedgerRowRepository,
	batchRepo adapter.ImportBatchRepository,
	completion adapter.CompletionService,
	cfg ConfirmImportConfig,
) *ConfirmImportUseCase {
	if cfg.DefaultSource == "" {
		cfg.DefaultSource = DefaultSource
	}
	return &ConfirmImportUseCase{
		categoryRepo:  categoryRepo,
		tagRepo:       tagRepo,
		completion:    completion,
		resolver:      NewResolver(tagRepo),
		enricher:      NewEnricher(completion, cfg.EnrichmentTimeout),
		detector:      NewDuplicateDetector(ledgerRepo, cfg.DuplicateWorkers),
		committer:     NewCommitter(ledgerRepo, batchRepo, cfg.CommitWorkers),
		defaultSource: strings.ToUpper(cfg.DefaultSource),
	}
}

// Execute imports the rows. Row-level failures end up in the summary; only an empty
// request, a missing completion credential or a store outage fail the whole call.
func (uc *ConfirmImportUseCase) Execute(ctx context.Context, input ConfirmImportInput) (*ConfirmImportOutput, error) {
	if len(input.Rows) == 0 {
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeEmptyImport,
			"there are no rows to import",
			domainerror.ErrEmptyImport,
		)
	}

	if input.Enrich && (uc.completion == nil || !uc.completion.IsAvailable()) {
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeEnrichmentNotConfigured,
			"enrichment requested but no AI API key is configured",
			domainerror.ErrEnrichmentNotConfigured,
		)
	}

	source := strings.ToUpper(strings.TrimSpace(input.Source))
	if source == "" {
		source = uc.defaultSource
	}

	catalog, err := LoadCatalog(ctx, uc.categoryRepo, uc.tagRepo)
	if err != nil {
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeImportStoreFailure,
			"failed to load categories and tags",
			err,
		)
	}

	stats := uc.resolver.Resolve(ctx, input.Rows, catalog)

	enrichment := &EnrichmentReport{Status: EnrichmentSkipped, Message: "enrichment not requested"}
	if input.Enrich {
		enrichment = uc.enricher.Enrich(ctx, input.Rows, catalog)
	}

	duplicates, err := uc.detector.Detect(ctx, input.Rows)
	if err != nil {
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeImportStoreFailure,
			"failed to check for duplicate rows",
			err,
		)
	}

	summary, err := uc.committer.Commit(ctx, CommitInput{
		FileName:   input.FileName,
		SourceTag:  source,
		Rows:       input.Rows,
		Duplicates: duplicates,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Bill import completed",
		"batchID", summary.BatchID,
		"fileName", input.FileName,
		"source", source,
		"total", summary.Total,
		"success", summary.Success,
		"duplicates", summary.Duplicates,
		"failed", summary.Failed,
		"createdTags", len(stats.CreatedTags),
		"warnings", len(stats.Warnings),
		"enrichment", enrichment.Status,
	)

	return &ConfirmImportOutput{
		Summary:     summary,
		Enrichment:  enrichment,
		CreatedTags: stats.CreatedTags,
		Warnings:    stats.Warnings,
	}, nil
}
