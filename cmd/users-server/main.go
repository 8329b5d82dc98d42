package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fittrack/fittrack/internal/config"
	"github.com/fittrack/fittrack/internal/observability"
	"github.com/fittrack/fittrack/internal/peers"
	"github.com/fittrack/fittrack/internal/storage"
	"github.com/fittrack/fittrack/internal/users"
)

func main() {
	config.Load()

	logger := initLogger()
	logger.Info("Configuration loaded", zap.String("source", "config.Load()"))

	pgConfig := config.Postgres()
	logger.Info("Database configuration",
		zap.String("host", pgConfig.Host),
		zap.Int("port", pgConfig.Port),
		zap.String("database", pgConfig.Database),
		zap.String("user", pgConfig.User))

	db, err := storage.Connect(pgConfig.DSN(), pgConfig.MaxOpenConnections)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Tables are auto-created at startup; there is no migration mechanism
	ctx := context.Background()
	if err := storage.CreateTables(ctx, db, (*users.UserSchema)(nil)); err != nil {
		logger.Fatal("Failed to create tables", zap.Error(err))
	}

	store := users.NewPostgresStore(db)
	service := users.NewService(store)

	peersConfig := config.Peers()
	logger.Info("Peer service configuration",
		zap.String("workout_service", peersConfig.WorkoutServiceBaseURL),
		zap.String("goals_service", peersConfig.GoalsServiceBaseURL))
	peerClient := peers.NewClient(peersConfig.WorkoutServiceBaseURL, peersConfig.GoalsServiceBaseURL, logger)

	handlers := users.NewHandlers(service, peerClient, logger)
	router := setupRouter(handlers)

	addr := fmt.Sprintf("%s:%d", config.Http().Host, config.Http().Port)

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	done := setupSignalHandler(server, db, logger)

	logger.Info("Starting users service", zap.String("address", addr))

	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	<-done
	logger.Info("Server shutdown complete")
}

func setupRouter(handlers *users.Handlers) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Wide open CORS: all origins, methods and headers
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:    []string{"*"},
	}))

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(observability.Middleware("users_service"))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Fitness Tracker Users Service"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.RegisterRoutes(router)

	return router
}

func initLogger() *zap.Logger {
	logConfig := config.Logger()

	var cfg zap.Config
	if logConfig.Format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	switch logConfig.Level {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	return logger
}

func setupSignalHandler(server *http.Server, db *bun.DB, logger *zap.Logger) chan struct{} {
	done := make(chan struct{}, 1)

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signalCh

		logger.Info("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Error during server shutdown", zap.Error(err))
		}

		if err := db.Close(); err != nil {
			logger.Error("Error closing database", zap.Error(err))
		}

		done <- struct{}{}
	}()

	return done
}
