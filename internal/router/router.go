package router

import (
	"time"

	"github.com/guustavovelos0/artisan/internal/config"
	"github.com/guustavovelos0/artisan/internal/handler"
	"github.com/guustavovelos0/artisan/internal/metrics"
	"github.com/guustavovelos0/artisan/internal/middleware"
	"github.com/guustavovelos0/artisan/internal/repository"
	"github.com/guustavovelos0/artisan/internal/service"
	"github.com/guustavovelos0/artisan/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP
	if cfg.MetricsEnabled {
		r.Use(metrics.Middleware())
	}

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	productRepo := repository.NewProductRepository(db)
	bomRepo := repository.NewBOMRepository(db)
	movementRepo := repository.NewMovementRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	clientSvc := service.NewClientService(clientRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	materialSvc := service.NewMaterialService(materialRepo, movementRepo, bomRepo)
	productSvc := service.NewProductService(productRepo, movementRepo)
	bomSvc := service.NewBOMService(productRepo, materialRepo, bomRepo)
	costingSvc := service.NewCostingService(productRepo, bomRepo)
	manufacturingSvc := service.NewManufacturingService(productRepo, materialRepo, bomRepo, movementRepo)
	inventorySvc := service.NewInventoryService(movementRepo)
	quoteSvc := service.NewQuoteService(quoteRepo, clientRepo, productRepo, userRepo, dispatcher, cfg.PDFStoragePath)
	dashboardSvc := service.NewDashboardService(clientRepo, productRepo, materialRepo, quoteRepo, rdb)
	reportSvc := service.NewReportService(materialRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	clientsH := handler.NewClientsHandler(clientSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	materialsH := handler.NewMaterialsHandler(materialSvc)
	productsH := handler.NewProductsHandler(productSvc, costingSvc, manufacturingSvc)
	bomH := handler.NewBOMHandler(bomSvc)
	quotesH := handler.NewQuotesHandler(quoteSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	reportsH := handler.NewReportsHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	if cfg.MetricsEnabled {
		r.GET("/metrics", metrics.Handler())
	}

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes — everything below is scoped to the authenticated account
	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		clients := v1.Group("/clients")
		{
			clients.POST("", clientsH.Create)
			clients.GET("", clientsH.List)
			clients.GET("/:id", clientsH.Get)
			clients.PUT("/:id", clientsH.Update)
			clients.DELETE("/:id", clientsH.Delete)
		}

		categories := v1.Group("/categories")
		{
			categories.POST("", categoriesH.Create)
			categories.GET("", categoriesH.List)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Delete)
		}

		materials := v1.Group("/materials")
		{
			materials.POST("", materialsH.Create)
			materials.GET("", materialsH.List)
			materials.GET("/:id", materialsH.Get)
			materials.PUT("/:id", materialsH.Update)
			materials.DELETE("/:id", materialsH.Delete)
			materials.PATCH("/:id/stock", materialsH.AdjustStock)
		}

		products := v1.Group("/products")
		{
			products.POST("", productsH.Create)
			products.GET("", productsH.List)
			products.GET("/:id", productsH.Get)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
			products.PATCH("/:id/stock", productsH.AdjustStock)
			products.GET("/:id/cost", productsH.Cost)
			products.POST("/:id/manufacture", productsH.Manufacture)

			// Bill of materials
			products.GET("/:id/materials", bomH.List)
			products.POST("/:id/materials", bomH.Add)
			products.PUT("/:id/materials/:material_id", bomH.Update)
			products.DELETE("/:id/materials/:material_id", bomH.Remove)
		}

		quotes := v1.Group("/quotes")
		{
			quotes.POST("", quotesH.Create)
			quotes.GET("", quotesH.List)
			quotes.GET("/:id", quotesH.Get)
			quotes.PATCH("/:id/status", quotesH.UpdateStatus)
			quotes.DELETE("/:id", quotesH.Delete)
			quotes.GET("/:id/pdf", quotesH.PDF)
			quotes.POST("/:id/send", quotesH.Send)
		}

		v1.GET("/dashboard", dashboardH.Summary)
		v1.GET("/inventory/movements", inventoryH.Movements)
		v1.GET("/reports/materials.xlsx", reportsH.Materials)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
