package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	catalogapp "github.com/backoffice/server/internal/application/catalog"
	orderingapp "github.com/backoffice/server/internal/application/ordering"
	reportapp "github.com/backoffice/server/internal/application/report"
	"github.com/backoffice/server/internal/domain/ordering"
	"github.com/backoffice/server/internal/infrastructure/config"
	"github.com/backoffice/server/internal/infrastructure/event"
	"github.com/backoffice/server/internal/infrastructure/logger"
	"github.com/backoffice/server/internal/infrastructure/notification"
	"github.com/backoffice/server/internal/infrastructure/persistence/mongodb"
	"github.com/backoffice/server/internal/infrastructure/scheduler"
	"github.com/backoffice/server/internal/interfaces/http/handler"
	"github.com/backoffice/server/internal/interfaces/http/middleware"
	"github.com/backoffice/server/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer log.Sync()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// MongoDB
	db, disconnect, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	productRepo := mongodb.NewProductRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)

	// Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	publisher := notification.NewRedisPublisher(redisClient, cfg.Redis.ReportChannel, log)

	// Domain events
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(orderingapp.NewOrderCreatedHandler(log), ordering.EventTypeOrderCreated)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Application services
	productService := catalogapp.NewProductService(productRepo, categoryRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo)
	orderService := orderingapp.NewOrderService(orderRepo, eventBus, log)
	dashboardService := reportapp.NewDashboardService(orderRepo, productRepo, log)
	salesReportService := reportapp.NewSalesReportService(orderRepo, publisher, log)

	// Scheduler
	var reportScheduler *scheduler.Scheduler
	var reportTrigger *scheduler.IntervalTrigger
	if cfg.Scheduler.Enabled {
		executor := scheduler.NewSalesReportExecutor(salesReportService, log)
		reportScheduler = scheduler.NewScheduler(scheduler.Config{
			Workers:       cfg.Scheduler.Workers,
			QueueSize:     cfg.Scheduler.QueueSize,
			JobTimeout:    cfg.Scheduler.JobTimeout,
			RetryAttempts: cfg.Scheduler.RetryAttempts,
			RetryDelay:    cfg.Scheduler.RetryDelay,
		}, executor, log)
		if err := reportScheduler.Start(ctx); err != nil {
			log.Fatal("Failed to start scheduler", zap.Error(err))
		}

		reportTrigger = scheduler.NewIntervalTrigger(cfg.Scheduler.ReportInterval, reportScheduler, log)
		if err := reportTrigger.Start(ctx); err != nil {
			log.Fatal("Failed to start report trigger", zap.Error(err))
		}
	}

	// HTTP server
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
		MaxAge:       12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.NewRouter(engine).
		Register(handler.NewDashboardHandler(dashboardService)).
		Register(handler.NewReportHandler(salesReportService)).
		Register(handler.NewProductHandler(productService)).
		Register(handler.NewCategoryHandler(categoryService)).
		Register(handler.NewOrderHandler(orderService)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}

	if reportTrigger != nil {
		if err := reportTrigger.Stop(shutdownCtx); err != nil {
			log.Error("Report trigger shutdown failed", zap.Error(err))
		}
	}
	if reportScheduler != nil {
		if err := reportScheduler.Stop(shutdownCtx); err != nil {
			log.Error("Scheduler shutdown failed", zap.Error(err))
		}
	}

	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Event bus shutdown failed", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Redis close failed", zap.Error(err))
	}
	if err := disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect failed", zap.Error(err))
	}

	log.Info("Server stopped")
}
