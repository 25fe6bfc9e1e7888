// File: slotboard/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"

	"slotboard/config"
	"slotboard/cron"
	"slotboard/database"
	tabularRepo "slotboard/database/repository/tabular"
	"slotboard/database/rowstore"
	"slotboard/handlers"
	"slotboard/middleware"
	"slotboard/routes"
	"slotboard/services/board"
	ai "slotboard/services/intelligence"
	"slotboard/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Backing store: select the row-store implementation.
	var store rowstore.RowStore
	var mongoClient *mongo.Client
	switch config.AppConfig.StoreMode {
	case "mongo":
		database.InitDB()
		mongoClient = database.MongoClient
		store = rowstore.NewMongoStore()
	case "rest":
		if config.AppConfig.StoreBaseURL == "" {
			logger.Sugar().Fatal("main: STORE_MODE=rest requires STORE_BASE_URL")
		}
		store = rowstore.NewRestStore(config.AppConfig.StoreBaseURL, config.AppConfig.StoreAPIKey)
	case "memory":
		logger.Sugar().Warn("main: using in-memory store; data will not survive a restart")
		store = rowstore.NewMemoryStore()
	default:
		logger.Sugar().Fatalf("main: unknown STORE_MODE %q", config.AppConfig.StoreMode)
	}

	utils.InitAIContextCache()

	// Adapter and board.
	cacheTTL := time.Duration(config.AppConfig.CacheTTLSeconds) * time.Second
	repo := tabularRepo.NewRepository(store, cacheTTL)
	boardService := board.NewService(repo)

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := boardService.Refresh(startCtx); err != nil {
		logger.Sugar().Fatalf("main: initial load from backing store failed: %v", err)
	}
	cancel()

	// AI parser.
	parseCache := ai.NewRedisParseCache(utils.GetAIContextCacheClient(), 30*time.Minute)
	var parserService ai.ParserService
	if config.AppConfig.GeminiAPIKey != "" {
		parserService = ai.NewDefaultParserService(ai.NewGeminiClient(config.AppConfig.GeminiAPIKey), parseCache)
	}

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	routes.SetupCORS(router)

	// Handlers.
	scheduleHandler := handlers.NewScheduleHandler(boardService, config.AppConfig.DisplayStepMinutes)
	peopleHandler := handlers.NewPeopleHandler(boardService)
	notesHandler := handlers.NewNotesHandler(boardService)
	exportHandler := handlers.NewExportHandler(boardService)
	var parseHandler *handlers.ParseHandler
	if parserService != nil {
		parseHandler = handlers.NewParseHandler(parserService)
	}

	hb := &routes.HandlerBundle{
		Schedule: scheduleHandler,
		People:   peopleHandler,
		Notes:    notesHandler,
		Parse:    parseHandler,
		Export:   exportHandler,
	}
	routes.RegisterScheduleRoutes(router, hb)
	routes.RegisterPeopleRoutes(router, hb)
	routes.RegisterNoteRoutes(router, hb)
	routes.RegisterExportRoutes(router, hb)
	routes.RegisterHealthRoute(router)
	if parseHandler != nil {
		routes.RegisterAIRoutes(router, hb)
	} else {
		logger.Sugar().Warn("main: GEMINI_API_KEY not set; /api/ai disabled")
	}

	// Background workers.
	utils.StartHealthMonitor([]*redis.Client{utils.GetAIContextCacheClient()}, mongoClient)
	refreshWorker := cron.StartRefreshWorker(config.AppConfig.RefreshCronSpec, boardService)
	defer refreshWorker.Stop()

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
