package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wardrobe/internal/api/controller"
	"wardrobe/internal/api/middleware"
	"wardrobe/internal/api/repository"
	"wardrobe/internal/api/service"
	"wardrobe/internal/cache"
	"wardrobe/internal/config"
	"wardrobe/internal/db"
	"wardrobe/internal/logger"
	"wardrobe/internal/server"
	"wardrobe/internal/session"
	"wardrobe/internal/telemetry"
	"wardrobe/web"
)

func main() {
	ctx := context.Background()

	cfg, err := config.New(os.Args[1:])
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	logger.Init(logger.ParseLevel(cfg.LogLevel))

	// Redis is the optional items cache; run without it when unreachable.
	rdb, err := db.NewRedisClient(ctx, cfg.RedisAddr)
	if err != nil {
		slog.Warn("redis unavailable, items cache disabled", "addr", cfg.RedisAddr, "error", err)
		rdb = nil
	}

	// Initialize SQLite DB
	database, err := db.Connect(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.Initialize(database); err != nil {
		log.Fatalf("failed to initialize sqlite db: %v", err)
	}
	if err := db.Seed(ctx, database); err != nil {
		log.Fatalf("failed to seed sqlite db: %v", err)
	}

	// Session token service; an empty secret means a per-process key.
	sessions := session.New([]byte(cfg.SessionSecret), cfg.SessionTTL)

	// Create repositories
	userRepo := repository.NewUserRepository(database)
	itemRepo := repository.NewItemRepository(database)

	// Create services
	userService := service.NewUserService(userRepo, sessions)
	itemService := service.NewItemService(itemRepo)

	// Create controllers and middleware
	itemsCache := cache.NewItemsCache(rdb)
	userController := controller.NewUserController(userService)
	itemController := controller.NewItemController(itemService, itemsCache, web.Templates())
	auth := middleware.NewAuth(sessions, userRepo)

	// Create the Gin-based server
	srv := server.NewServer(auth, userController, itemController)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	httpServer := &http.Server{
		Addr:    cfg.RunAddr,
		Handler: srv.Engine(),
	}

	go func() {
		slog.Info("http server started", "addr", cfg.RunAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop

	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	slog.Info("server exiting")
}
