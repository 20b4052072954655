package app

import (
	"bank-office-api/config"
	"bank-office-api/db"
	"bank-office-api/handler"
	"bank-office-api/logger"
	"bank-office-api/repository"
	"bank-office-api/router"
	"bank-office-api/service"
	"context"
	"database/sql"
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

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to Redis: %v", err)
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
func buildRouter(database *sql.DB, redisClient *redis.Client) http.Handler {
	customerRepo := repository.NewCustomerRepository(database)
	accountRepo := repository.NewAccountRepository(database)
	movementRepo := repository.NewMovementRepository(database)

	customerService := service.NewCustomerService(customerRepo, accountRepo)
	accountService := service.NewAccountService(accountRepo, customerRepo, redisClient)
	movementService := service.NewMovementService(database, accountRepo, movementRepo)

	customerHandler := handler.NewCustomerHandler(customerService)
	accountHandler := handler.NewAccountHandler(accountService)
	movementHandler := handler.NewMovementHandler(movementService)

	return router.NewRouter(customerHandler, accountHandler, movementHandler)
}

// TestApp exposes the fully wired router over caller-provided connections so
// integration tests can exercise the HTTP surface directly.
type TestApp struct {
	Router http.Handler
}

func NewTestApp(database *sql.DB, redisClient *redis.Client) *TestApp {
	return &TestApp{Router: buildRouter(database, redisClient)}
}
