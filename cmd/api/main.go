package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/cs-copilot/backend/internal/analysis"
	"github.com/cs-copilot/backend/internal/api/handlers"
	cache "github.com/cs-copilot/backend/internal/cache/redis"
	"github.com/cs-copilot/backend/internal/evaluation"
	"github.com/cs-copilot/backend/internal/history"
	"github.com/cs-copilot/backend/internal/llm"
	"github.com/cs-copilot/backend/internal/metrics"
	"github.com/cs-copilot/backend/internal/middleware/ratelimit"
	"github.com/cs-copilot/backend/internal/storage/sqlite"
	"github.com/cs-copilot/backend/internal/tracking"
	"github.com/cs-copilot/backend/pkg/config"
	appLogger "github.com/cs-copilot/backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	err = appLogger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting Customer Success Copilot API Server")

	metrics.Init()

	var sqliteClient *sqlite.Client
	var persister tracking.TracePersister
	if cfg.SQLite.Enabled {
		sqliteClient, err = sqlite.NewClient(cfg.SQLite.Path)
		if err != nil {
			appLogger.Fatal("Failed to create SQLite client", zap.Error(err))
		}
		defer sqliteClient.Close()

		if err := sqliteClient.InitSchema(); err != nil {
			appLogger.Fatal("Failed to initialize schema", zap.Error(err))
		}
		persister = sqlite.NewTraceSink(sqliteClient)
	}

	var cacheClient *cache.Client
	if cfg.Redis.Enabled {
		cacheClient, err = cache.NewClient(
			cfg.Redis.Host,
			cfg.Redis.Port,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.TTLSec,
		)
		if err != nil {
			appLogger.Warn("Redis unavailable, analysis caching disabled", zap.Error(err))
			cacheClient = nil
		} else {
			defer cacheClient.Close()
		}
	}

	llmClient := llm.NewClient(
		cfg.LLM.APIKey,
		cfg.LLM.AnalysisModel,
		cfg.LLM.ResponseModel,
		cfg.LLM.Temperature,
		cfg.LLM.MaxTokens,
		cfg.LLM.TimeoutSec,
	)

	store := history.NewMemoryStore[*analysis.AnalysisResult](cfg.Pipeline.HistoryLimit)
	copilot := analysis.NewCopilot(llmClient, store, analysis.Config{
		ResponseModel: cfg.LLM.ResponseModel,
		StageTimeout:  time.Duration(cfg.Pipeline.StageTimeoutSec) * time.Second,
	})

	evaluator := evaluation.NewEvaluator(llmClient, cfg.LLM.AnalysisModel)
	tracker := tracking.NewTracker(copilot, evaluator, persister)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	limiter := ratelimit.New(ratelimit.Config{
		MaxRequestsPerMinute: cfg.Server.RateLimitRPM,
		Logger:               appLogger.GetLogger(),
	})
	defer limiter.Stop()

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	app.Use(limiter.Middleware())

	analyzeHandler := handlers.NewAnalyzeHandler(copilot, cacheClient)
	conversationsHandler := handlers.NewConversationsHandler(tracker, sqliteClient)
	wsHandler := handlers.NewWebSocketHandler(tracker)

	api := app.Group("/api/v1")

	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Post("/respond", analyzeHandler.HandleRespond)

	api.Post("/conversations", conversationsHandler.HandleCreate)
	api.Get("/conversations", conversationsHandler.HandleRecent)
	api.Get("/dashboard", conversationsHandler.HandleDashboard)
	api.Post("/feedback", conversationsHandler.HandleFeedback)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	api.Get("/ws", websocket.New(wsHandler.HandleConnection))

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	app.Get("/metrics", metrics.MetricsHandler())

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	appLogger.Info("Server starting", zap.String("address", addr))

	go func() {
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Server shutting down gracefully...")
	app.Shutdown()
	appLogger.Info("Server stopped")
}
