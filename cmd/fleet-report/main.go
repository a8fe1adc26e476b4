package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/mr1hm/go-drone-fleet/internal/api"
	"github.com/mr1hm/go-drone-fleet/internal/config"
	"github.com/mr1hm/go-drone-fleet/internal/events"
	"github.com/mr1hm/go-drone-fleet/internal/logging"
	"github.com/mr1hm/go-drone-fleet/internal/repository"
	"github.com/mr1hm/go-drone-fleet/internal/service"
)

const eventBufferSize = 16

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port, "driver", cfg.DB.Driver)

	db, err := openStore(cfg.DB)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	broadcaster := events.NewBroadcaster(eventBufferSize)

	reports := service.NewReports(db)
	mutations := service.NewMutations(db, broadcaster, cfg.AppUsers.HashPasswords)

	// Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(cfg.HTTP.RateLimitRPS))
	router.Use(api.RequestLogger())

	handler := api.NewHandler(reports, mutations, broadcaster)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	broadcaster.Close() // ends open event streams so Shutdown does not wait on them

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}

func openStore(cfg config.DatabaseConfig) (*repository.SQLStore, error) {
	switch cfg.Driver {
	case config.DriverMySQL:
		return repository.NewMySQLDB(cfg)
	default:
		if cfg.Path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
				return nil, fmt.Errorf("error creating data directory: %w", err)
			}
		}
		return repository.NewSQLiteDB(cfg.Path)
	}
}
