package app

import (
	"context"
	"database/sql"
	"go-user-api/config"
	"go-user-api/db"
	"go-user-api/handler"
	"go-user-api/logger"
	"go-user-api/repository"
	"go-user-api/router"
	"go-user-api/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations("file://db/migrations"); err != nil {
		logger.Log.Fatalf("Error running migrations: %v", err)
	}

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to redis: %v", err)
	}
	defer redisClient.Close()

	r := buildRouter(database, redisClient)

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}

// buildRouter wires repositories, services and handlers together.
// Secrets and token policy are read from config exactly once, here.
func buildRouter(database *sql.DB, redisClient *redis.Client) http.Handler {
	codec := service.NewTokenCodec(config.AppConfig.JWT)
	hasher := service.NewHasher(config.AppConfig.Hash.Pepper)

	userRepo := repository.NewUserRepository(database)
	tokenRepo := repository.NewTokenRepository(database)
	followerRepo := repository.NewFollowerRepository(database)

	authService := service.NewAuthService(userRepo, tokenRepo, codec, hasher)
	verificationService := service.NewVerificationService(userRepo, codec, hasher, authService, redisClient)
	profileService := service.NewProfileService(userRepo, followerRepo, redisClient)

	authHandler := handler.NewAuthHandler(authService, codec)
	verificationHandler := handler.NewVerificationHandler(verificationService)
	profileHandler := handler.NewProfileHandler(profileService)

	return router.NewRouter(authHandler, verificationHandler, profileHandler, codec)
}

// TestApp bundles the wired router with its backing connections for
// integration tests.
type TestApp struct {
	DB     *sql.DB
	Router http.Handler
}

func NewTestApp(database *sql.DB, redisClient *redis.Client) *TestApp {
	return &TestApp{
		DB:     database,
		Router: buildRouter(database, redisClient),
	}
}
