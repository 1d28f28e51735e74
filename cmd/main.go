package main

import (
	"strconv"
	"time"

	"matching-service/internal/handler"
	"matching-service/internal/middleware"
	"matching-service/pkg/config"
	"matching-service/pkg/database"
	"matching-service/pkg/logger"
	appmetrics "matching-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting matching service...", zap.String("environment", cfg.Server.Env))

	// Initialize Prometheus metrics
	appmetrics.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	// Initialize database and run migrations
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established and migrations completed",
		zap.String("db_host", cfg.Database.Host),
		zap.String("db_name", cfg.Database.Name))

	// Wire the workflow engine (loads the CJK dictionary when configured)
	handler.Init(cfg)
	log.Info("Matching engine initialized",
		zap.Float64("min_similarity", cfg.Matching.MinSimilarity),
		zap.Int("max_suggestions", cfg.Matching.MaxSuggestions),
		zap.Float64("auto_confirm_threshold", cfg.Matching.AutoConfirmThreshold),
		zap.String("cjk_dict", cfg.Matching.CJKDictPath))

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)

	// Request logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start).Seconds()
			status := c.Response().Status

			log := logger.FromContext(c)
			log.Info("HTTP Request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", status),
				zap.Float64("duration_s", duration),
				zap.String("ip", c.RealIP()),
			)

			appmetrics.HttpRequestsTotal.WithLabelValues(
				c.Request().Method,
				c.Request().URL.Path,
				strconv.Itoa(status),
			).Inc()

			appmetrics.HttpRequestDuration.WithLabelValues(
				c.Request().Method,
				c.Request().URL.Path,
				strconv.Itoa(status),
			).Observe(duration)

			return err
		}
	})

	// Public routes
	e.GET("/", handler.Hello)
	e.GET("/health", handler.Hello)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// API routes
	api := e.Group("/api")

	suppliers := api.Group("/suppliers")
	suppliers.GET("/:id/products/unmatched-with-suggestions", handler.ListUnmatchedWithSuggestions)
	suppliers.POST("/:id/products/:pid/match", handler.MatchSupplierProduct)
	suppliers.PUT("/:id/products/:pid/price-override", handler.SetPriceOverride)
	suppliers.DELETE("/:id/products/:pid/suggestions/:cid", handler.RejectSuggestion)
	suppliers.POST("/:id/products/bulk-confirm", handler.BulkConfirm)

	catalog := api.Group("/catalog")
	catalog.POST("/products", handler.CreateCatalogProduct)
	catalog.GET("/products", handler.ListCatalogProducts)

	importGroup := api.Group("/import")
	importGroup.POST("/batches", handler.ImportBatches)
	importGroup.POST("/spreadsheet", handler.ImportSpreadsheet)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
