package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"tableScout/app/echo-server/metrics"
	"tableScout/app/echo-server/router"
	"tableScout/business/ranking"
	venueService "tableScout/business/venue"
	"tableScout/internal/middleware"
	"tableScout/internal/repository/nlu"
	psqlRepo "tableScout/internal/repository/postgres"
	redisRepo "tableScout/internal/repository/redis"
	"tableScout/internal/rest"
	"tableScout/pkg/config"
	"tableScout/pkg/database"
	redisdb "tableScout/pkg/database/redis"
	"tableScout/pkg/logger"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting TableScout", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Init metrics
	metrics.Init()

	// Ranking TTL caches: in-memory by default, redis when configured
	rankingCfg := ranking.DefaultConfig()
	rankingCfg.SignalTTL = cfg.Ranking.SignalTTL
	rankingCfg.RerankTTL = cfg.Ranking.RerankTTL
	rankingCfg.ShortlistSize = cfg.Ranking.ShortlistSize
	rankingCfg.DefaultRadius = cfg.Ranking.DefaultRadius

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()

	var signalCache, rerankCache ranking.Cache
	if cfg.Ranking.CacheBackend == "redis" {
		redisClient, err := redisdb.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}
		defer redisdb.CloseRedisClient(redisClient)

		signalCache = redisRepo.NewTTLCache(redisClient)
		rerankCache = redisRepo.NewTTLCache(redisClient)
		logger.Info("Using redis ranking caches")
	} else {
		signalMem := ranking.NewMemoryCache()
		rerankMem := ranking.NewMemoryCache()
		signalMem.StartSweeper(sweepCtx, 5*time.Minute)
		rerankMem.StartSweeper(sweepCtx, 5*time.Minute)

		signalCache = signalMem
		rerankCache = rerankMem
	}

	// Init NLU collaborator client
	nluRepo := nlu.NewNLURepository(nlu.NLUConfig{
		BaseURL: cfg.NLU.BaseURL,
		APIKey:  cfg.NLU.APIKey,
		Model:   cfg.NLU.Model,
		Timeout: cfg.NLU.Timeout,
	})

	// Init repo
	venueRepo := psqlRepo.NewVenueRepository(db)

	// Init service
	rankingSvc := ranking.NewRankingService(venueRepo, nluRepo, signalCache, rerankCache, rankingCfg)
	venueSvc := venueService.NewVenueService(venueRepo)

	// Init handler
	venueHandler := rest.NewVenueHandler(rankingSvc, venueSvc)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupVenueRoutes(api, venueHandler)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
