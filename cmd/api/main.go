package main

import (
	"fmt"
	"os"

	"trade-backtest/internal/api/handlers"
	"trade-backtest/internal/api/middleware"
	"trade-backtest/internal/logger"
	"trade-backtest/internal/metrics"
	"trade-backtest/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	isProd := os.Getenv("API_ENV") == "production"
	log, sync := logger.New(isProd)
	defer sync()

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	if isProd {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorHandler())

	resultStore := store.NewMemory(store.DefaultTTL)
	backtestHandler := handlers.NewBacktestHandler(resultStore, log)
	strategyHandler := handlers.NewStrategyHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api/v1")
	{
		api.POST("/backtest", backtestHandler.RunBacktest)
		api.GET("/backtest/:id/ledger", backtestHandler.GetLedger)
		api.GET("/backtest/:id/snapshots", backtestHandler.GetSnapshots)
		api.GET("/strategies", strategyHandler.ListStrategies)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Info("starting API server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
