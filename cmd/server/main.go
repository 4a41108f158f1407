package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	warehousingapp "github.com/stockcraft/backend/internal/application/warehousing"
	"github.com/stockcraft/backend/internal/infrastructure/config"
	"github.com/stockcraft/backend/internal/infrastructure/event"
	"github.com/stockcraft/backend/internal/infrastructure/logger"
	"github.com/stockcraft/backend/internal/infrastructure/persistence"
	"github.com/stockcraft/backend/internal/interfaces/http/handler"
	"github.com/stockcraft/backend/internal/interfaces/http/middleware"
	"github.com/stockcraft/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting StockCraft Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	levelRepo := persistence.NewGormStockLevelRepository(db.DB)
	lotRepo := persistence.NewGormStockLotRepository(db.DB)
	moveRepo := persistence.NewGormStockMoveRepository(db.DB)
	reservationRepo := persistence.NewGormStockReservationRepository(db.DB)
	sheetRepo := persistence.NewGormInventorySheetRepository(db.DB)

	// Transaction scope shared by the write-path services
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Initialize application services
	warehouseService := warehousingapp.NewWarehouseService(warehouseRepo, levelRepo)
	stockService := warehousingapp.NewStockService(txScope, warehouseRepo, levelRepo, lotRepo, moveRepo)
	valuationService := warehousingapp.NewValuationService(warehouseRepo, levelRepo, lotRepo)
	reservationService := warehousingapp.NewReservationService(txScope, warehouseRepo, reservationRepo, levelRepo)
	countService := warehousingapp.NewCountService(txScope, warehouseRepo, sheetRepo, levelRepo)

	// Initialize the in-memory event bus and subscribe handlers
	eventBus := event.NewInMemoryEventBus(log)

	lowStockHandler := warehousingapp.NewStockBelowThresholdHandler(log).
		WithNotifier(warehousingapp.NewLoggingStockAlertNotifier(log))
	eventBus.Subscribe(lowStockHandler)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	warehouseService.SetEventPublisher(eventBus)
	stockService.SetEventPublisher(eventBus)
	reservationService.SetEventPublisher(eventBus)
	countService.SetEventPublisher(eventBus)

	// Initialize handlers
	warehouseHandler := handler.NewWarehouseHandler(warehouseService)
	stockHandler := handler.NewStockHandler(stockService)
	valuationHandler := handler.NewValuationHandler(valuationService)
	reservationHandler := handler.NewReservationHandler(reservationService)
	sheetHandler := handler.NewSheetHandler(countService)

	// Set gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Warehouse management
	warehouseRoutes := router.NewDomainGroup("warehouses", "/warehouses")
	warehouseRoutes.POST("", warehouseHandler.Create)
	warehouseRoutes.GET("", warehouseHandler.List)
	warehouseRoutes.GET("/code/:code", warehouseHandler.GetByCode)
	warehouseRoutes.GET("/:id", warehouseHandler.GetByID)
	warehouseRoutes.PUT("/:id", warehouseHandler.Update)
	warehouseRoutes.PUT("/:id/valuation-method", warehouseHandler.UpdateValuationMethod)
	warehouseRoutes.POST("/:id/enable", warehouseHandler.Enable)
	warehouseRoutes.POST("/:id/disable", warehouseHandler.Disable)
	warehouseRoutes.DELETE("/:id", warehouseHandler.Delete)

	// Stock levels, lots and moves
	stockRoutes := router.NewDomainGroup("stock", "/stock")
	stockRoutes.POST("/receive", stockHandler.Receive)
	stockRoutes.GET("/levels/lookup", stockHandler.Lookup)
	stockRoutes.GET("/levels/alerts/low-stock", stockHandler.ListBelowMinimum)
	stockRoutes.PUT("/thresholds", stockHandler.SetThresholds)
	stockRoutes.GET("/warehouses/:warehouse_id/levels", stockHandler.ListByWarehouse)
	stockRoutes.GET("/items/:item_id/total", stockHandler.TotalOnHand)
	stockRoutes.GET("/lots", stockHandler.ListLots)
	stockRoutes.GET("/moves", stockHandler.ListMoves)
	stockRoutes.GET("/moves/reference/:ref_kind/:ref_id", stockHandler.ListMovesByReference)

	// Valuation
	valuationRoutes := router.NewDomainGroup("valuation", "/valuation")
	valuationRoutes.GET("/on-hand", valuationHandler.ValueOnHand)
	valuationRoutes.POST("/cost-of-goods", valuationHandler.CostOfGoods)

	// Reservations
	reservationRoutes := router.NewDomainGroup("reservations", "/reservations")
	reservationRoutes.POST("", reservationHandler.Reserve)
	reservationRoutes.GET("", reservationHandler.List)
	reservationRoutes.GET("/available", reservationHandler.Available)
	reservationRoutes.GET("/reference/:ref_kind/:ref_id", reservationHandler.ListByReference)
	reservationRoutes.GET("/:id", reservationHandler.GetByID)
	reservationRoutes.PUT("/:id/quantity", reservationHandler.UpdateQuantity)
	reservationRoutes.POST("/:id/ship", reservationHandler.Ship)
	reservationRoutes.POST("/:id/cancel", reservationHandler.Cancel)
	reservationRoutes.DELETE("/:id", reservationHandler.Release)

	// Inventory count sheets
	sheetRoutes := router.NewDomainGroup("sheets", "/sheets")
	sheetRoutes.POST("", sheetHandler.Create)
	sheetRoutes.GET("", sheetHandler.List)
	sheetRoutes.GET("/:id", sheetHandler.GetByID)
	sheetRoutes.POST("/:id/counts", sheetHandler.RecordCount)
	sheetRoutes.POST("/:id/complete", sheetHandler.Complete)
	sheetRoutes.POST("/:id/approve", sheetHandler.Approve)
	sheetRoutes.POST("/:id/revert-approval", sheetHandler.RevertApproval)
	sheetRoutes.POST("/:id/close", sheetHandler.Close)
	sheetRoutes.DELETE("/:id", sheetHandler.Delete)

	r.Register(warehouseRoutes).
		Register(stockRoutes).
		Register(valuationRoutes).
		Register(reservationRoutes).
		Register(sheetRoutes)

	// System routes
	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
