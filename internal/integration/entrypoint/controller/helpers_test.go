package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bill-center/backend/internal/application/usecase/billimport"
	"github.com/bill-center/backend/internal/application/usecase/category"
	"github.com/bill-center/backend/internal/application/usecase/importbatch"
	"github.com/bill-center/backend/internal/application/usecase/tag"
	"github.com/bill-center/backend/internal/integration/entrypoint/validation"
	"github.com/bill-center/backend/internal/integration/persistence"
	"github.com/bill-center/backend/internal/integration/persistence/model"
	"github.com/bill-center/backend/internal/integration/spreadsheet"
)

// fakeCompletion returns a canned reply and records the prompts it was sent.
type fakeCompletion struct {
	reply     string
	err       error
	available bool
	prompts   []string
}

func (f *fakeCompletion) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func (f *fakeCompletion) IsAvailable() bool {
	return f.available
}

type testAPI struct {
	engine *gin.Engine
	db     *gorm.DB
}

type apiOptions struct {
	completion     *fakeCompletion
	maxUploadBytes int64
}

// newTestAPI wires every controller over an isolated in-memory database.
func newTestAPI(t *testing.T, opts apiOptions) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Register()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	if opts.completion == nil {
		opts.completion = &fakeCompletion{}
	}

	categoryRepo := persistence.NewCategoryRepository(db)
	tagRepo := persistence.NewTagRepository(db)
	ledgerRepo := persistence.NewLedgerRowRepository(db)
	batchRepo := persistence.NewImportBatchRepository(db)

	registry, err := spreadsheet.NewDefaultRegistry()
	if err != nil {
		t.Fatalf("failed to load registry: %v", err)
	}

	billImport := NewBillImportController(
		billimport.NewPreviewImportUseCase(registry, "", opts.maxUploadBytes),
		billimport.NewConfirmImportUseCase(categoryRepo, tagRepo, ledgerRepo, batchRepo, opts.completion, billimport.ConfirmImportConfig{}),
		billimport.NewAnalyzeUseCase(categoryRepo, tagRepo, opts.completion, 0),
		opts.maxUploadBytes,
	)
	categories := NewCategoryController(
		category.NewListCategoriesUseCase(categoryRepo),
		category.NewCreateCategoryUseCase(categoryRepo),
		category.NewDeleteCategoryUseCase(categoryRepo, ledgerRepo),
	)
	tags := NewTagController(
		tag.NewListTagsUseCase(tagRepo),
		tag.NewCreateTagUseCase(tagRepo),
		tag.NewDeleteTagUseCase(tagRepo, ledgerRepo),
	)
	batches := NewImportBatchController(importbatch.NewListImportBatchesUseCase(batchRepo))
	health := NewHealthController(func() bool { return sqlDB.Ping() == nil }, opts.completion.IsAvailable(), registry.Sources())

	engine := gin.New()
	engine.GET("/health", health.Check)
	v1 := engine.Group("/api/v1")
	v1.POST("/bills/upload/preview", billImport.Preview)
	v1.POST("/bills/upload/confirm", billImport.Confirm)
	v1.POST("/ai/analyze", billImport.Analyze)
	v1.GET("/categories", categories.List)
	v1.POST("/categories", categories.Create)
	v1.DELETE("/categories/:id", categories.Delete)
	v1.GET("/tags", tags.List)
	v1.POST("/tags", tags.Create)
	v1.DELETE("/tags/:id", tags.Delete)
	v1.GET("/import-batches", batches.List)

	return &testAPI{engine: engine, db: db}
}

// do sends a JSON request and decodes the JSON reply into out when out is not nil.
func (a *testAPI) do(t *testing.T, method, path string, body any, out any) int {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		payload, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return a.serve(t, req, out)
}

// upload posts data as the multipart "file" field together with an optional source.
func (a *testAPI) upload(t *testing.T, fileName string, data []byte, source string, out any) int {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if source != "" {
		if err := writer.WriteField("source", source); err != nil {
			t.Fatalf("failed to write source field: %v", err)
		}
	}
	if data != nil {
		part, err := writer.CreateFormFile("file", fileName)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bills/upload/preview", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return a.serve(t, req, out)
}

func (a *testAPI) serve(t *testing.T, req *http.Request, out any) int {
	t.Helper()
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)

	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec.Code
}
