// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/bill-center/backend/internal/integration/entrypoint/controller"
	"github.com/bill-center/backend/internal/integration/entrypoint/middleware"
	"github.com/bill-center/backend/internal/integration/entrypoint/validation"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	billImportController  *controller.BillImportController
	categoryController    *controller.CategoryController
	tagController         *controller.TagController
	importBatchController *controller.ImportBatchController
	analyzeRateLimiter    *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	billImportController *controller.BillImportController,
	categoryController *controller.CategoryController,
	tagController *controller.TagController,
	importBatchController *controller.ImportBatchController,
	analyzeRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:      healthController,
		billImportController:  billImportController,
		categoryController:    categoryController,
		tagController:         tagController,
		importBatchController: importBatchController,
		analyzeRateLimiter:    analyzeRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	validation.Register()

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		if r.billImportController != nil {
			upload := v1.Group("/bills/upload")
			{
				upload.POST("/preview", r.billImportController.Preview)
				upload.POST("/confirm", r.billImportController.Confirm)
			}

			ai := v1.Group("/ai")
			if r.analyzeRateLimiter != nil {
				ai.Use(r.analyzeRateLimiter.Middleware())
			}
			{
				ai.POST("/analyze", r.billImportController.Analyze)
			}
		}

		if r.categoryController != nil {
			categories := v1.Group("/categories")
			{
				categories.GET("", r.categoryController.List)
				categories.POST("", r.categoryController.Create)
				categories.DELETE("/:id", r.categoryController.Delete)
			}
		}

		if r.tagController != nil {
			tags := v1.Group("/tags")
			{
				tags.GET("", r.tagController.List)
				tags.POST("", r.tagController.Create)
				tags.DELETE("/:id", r.tagController.Delete)
			}
		}

		if r.importBatchController != nil {
			v1.GET("/import-batches", r.importBatchController.List)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
