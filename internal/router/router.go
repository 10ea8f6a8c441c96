// Package router wires repositories, services and handlers into the HTTP API.
package router

import (
	"time"

	"github.com/HIMS4RA/CocoPro/internal/config"
	"github.com/HIMS4RA/CocoPro/internal/handler"
	"github.com/HIMS4RA/CocoPro/internal/ledger"
	"github.com/HIMS4RA/CocoPro/internal/middleware"
	"github.com/HIMS4RA/CocoPro/internal/repository"
	"github.com/HIMS4RA/CocoPro/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New assembles the full dependency graph and returns the configured engine.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, sink ledger.AlertSink) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Repositories
	itemRepo := repository.NewStockItemRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	productionRepo := repository.NewProductionRepository(db)
	batchRepo := repository.NewBatchRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)

	// Core ledger engine
	engine := ledger.NewEngine(itemRepo, movementRepo, sink)

	// Services
	materialSvc := service.NewMaterialService(itemRepo, movementRepo, engine)
	productionSvc := service.NewProductionService(productionRepo, engine)
	batchSvc := service.NewBatchService(batchRepo)
	supplierSvc := service.NewSupplierService(supplierRepo)
	reportSvc := service.NewReportService(itemRepo, productionRepo, cfg.PDFStoragePath)

	// Handlers
	materials := handler.NewMaterialHandler(materialSvc)
	production := handler.NewProductionHandler(productionSvc)
	batches := handler.NewBatchHandler(batchSvc)
	suppliers := handler.NewSupplierHandler(supplierSvc)
	reports := handler.NewReportHandler(reportSvc)
	health := handler.NewHealthHandler(db, rdb)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(),
		middleware.RateLimiter(300, time.Minute),
	)

	r.GET("/health", health.Check)

	v1 := r.Group("/v1")
	{
		m := v1.Group("/materials")
		{
			m.POST("", materials.Create)
			m.GET("", materials.List)
			m.GET("/low-stock", materials.LowStock)
			m.GET("/:id", materials.Get)
			m.DELETE("/:id", materials.Delete)
			m.POST("/:id/receive", materials.Receive)
			m.PUT("/:id/threshold", materials.SetThreshold)
			m.GET("/:id/movements", materials.Movements)
		}

		p := v1.Group("/production")
		{
			p.POST("", production.Record)
			p.GET("", production.List)
			p.GET("/daily", production.Daily)
			p.GET("/:id", production.Get)
			p.DELETE("/:id", production.Delete)
		}

		b := v1.Group("/batches")
		{
			b.POST("", batches.Start)
			b.PUT("/:batchId/stop", batches.Stop)
			b.GET("/recent", batches.Recent)
			b.GET("/today", batches.Today)
		}

		s := v1.Group("/suppliers")
		{
			s.POST("", suppliers.Create)
			s.GET("", suppliers.List)
			s.GET("/:id", suppliers.Get)
			s.PUT("/:id", suppliers.Update)
			s.DELETE("/:id", suppliers.Deactivate)
		}

		rep := v1.Group("/reports")
		{
			rep.GET("/daily-quantities", reports.DailyQuantities)
			rep.GET("/daily-production", reports.DailyProduction)
			rep.GET("/daily-production/pdf", reports.DailyProductionPDF)
		}
	}

	return r
}
