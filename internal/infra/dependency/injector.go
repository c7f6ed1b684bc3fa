// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/bill-center/backend/config"
	"github.com/bill-center/backend/internal/application/adapter"
	"github.com/bill-center/backend/internal/application/usecase/billimport"
	"github.com/bill-center/backend/internal/application/usecase/category"
	"github.com/bill-center/backend/internal/application/usecase/importbatch"
	"github.com/bill-center/backend/internal/application/usecase/tag"
	"github.com/bill-center/backend/internal/infra/server/router"
	"github.com/bill-center/backend/internal/integration/adapters"
	"github.com/bill-center/backend/internal/integration/entrypoint/controller"
	"github.com/bill-center/backend/internal/integration/entrypoint/middleware"
	"github.com/bill-center/backend/internal/integration/persistence"
	"github.com/bill-center/backend/internal/integration/spreadsheet"
)

// Injector holds all application dependencies.
type Injector struct {
	Config        *config.Config
	DB            *gorm.DB
	Router        *router.Router
	Registry      *spreadsheet.Registry
	Completion    adapter.CompletionService
	PreviewImport *billimport.PreviewImportUseCase
	ConfirmImport *billimport.ConfirmImportUseCase
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case completion replies are not cached.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Injector, error) {
	// Create repositories
	categoryRepo := persistence.NewCategoryRepository(db)
	tagRepo := persistence.NewTagRepository(db)
	ledgerRepo := persistence.NewLedgerRowRepository(db)
	batchRepo := persistence.NewImportBatchRepository(db)

	// Create adapters/services
	registry, err := spreadsheet.LoadRegistry(cfg.Import.SourcesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load source definitions: %w", err)
	}
	completion := NewCompletionService(cfg, redisClient)

	// Create bill import use cases
	previewUseCase := billimport.NewPreviewImportUseCase(registry, cfg.Import.DefaultSource, cfg.Import.MaxUploadBytes)
	confirmUseCase := billimport.NewConfirmImportUseCase(
		categoryRepo,
		tagRepo,
		ledgerRepo,
		batchRepo,
		completion,
		billimport.ConfirmImportConfig{
			DefaultSource:     cfg.Import.DefaultSource,
			EnrichmentTimeout: cfg.AI.Timeout,
			CommitWorkers:     cfg.Import.CommitWorkers,
			DuplicateWorkers:  cfg.Import.DuplicateWorkers,
		},
	)
	analyzeUseCase := billimport.NewAnalyzeUseCase(categoryRepo, tagRepo, completion, cfg.AI.Timeout)

	// Create category and tag use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, ledgerRepo)

	listTagsUseCase := tag.NewListTagsUseCase(tagRepo)
	createTagUseCase := tag.NewCreateTagUseCase(tagRepo)
	deleteTagUseCase := tag.NewDeleteTagUseCase(tagRepo, ledgerRepo)

	listImportBatchesUseCase := importbatch.NewListImportBatchesUseCase(batchRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, completion.IsAvailable(), registry.Sources())

	billImportController := controller.NewBillImportController(
		previewUseCase,
		confirmUseCase,
		analyzeUseCase,
		cfg.Import.MaxUploadBytes,
	)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		deleteCategoryUseCase,
	)

	tagController := controller.NewTagController(
		listTagsUseCase,
		createTagUseCase,
		deleteTagUseCase,
	)

	importBatchController := controller.NewImportBatchController(listImportBatchesUseCase)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	analyzeLimit := cfg.AI.RateLimit
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		analyzeLimit = 1000
	}
	analyzeRateLimiter := middleware.NewRateLimiter(analyzeLimit)

	// Create router
	r := router.NewRouter(
		healthController,
		billImportController,
		categoryController,
		tagController,
		importBatchController,
		analyzeRateLimiter,
	)

	return &Injector{
		Config:        cfg,
		DB:            db,
		Router:        r,
		Registry:      registry,
		Completion:    completion,
		PreviewImport: previewUseCase,
		ConfirmImport: confirmUseCase,
	}, nil
}

// NewCompletionService builds the configured completion provider, wrapped with the
// Redis reply cache when a client is given and caching is enabled.
func NewCompletionService(cfg *config.Config, redisClient *redis.Client) adapter.CompletionService {
	var service adapter.CompletionService
	switch cfg.AI.Provider {
	case "gemini":
		service = adapters.NewGeminiService(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Temperature)
	default:
		service = adapters.NewOpenAIService(
			cfg.AI.BaseURL,
			cfg.AI.APIKey,
			cfg.AI.Model,
			cfg.AI.Temperature,
			&http.Client{Timeout: cfg.AI.Timeout},
		)
	}

	if redisClient != nil && cfg.Redis.CacheEnabled {
		slog.Info("Completion reply cache enabled", "ttl", cfg.Redis.CacheTTL)
		return adapters.NewCachedCompletionService(service, redisClient, cfg.AI.Provider+"/"+cfg.AI.Model, cfg.Redis.CacheTTL)
	}
	return service
}
