package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roombook/core/cache"
	"roombook/core/config"
	"roombook/core/database"
	"roombook/core/logger"
	"roombook/core/middleware"
	"roombook/modules/calendar"
	notificationservice "roombook/modules/notification/service"
	"roombook/modules/reservation"
	"roombook/modules/reservation/repository"
	reservationservice "roombook/modules/reservation/service"

	"github.com/labstack/echo/v4"
)

// Run assembles the application and serves until interrupted.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.LogLevel)

	repo, err := buildRepository(cfg)
	if err != nil {
		return err
	}

	monthCache := buildCache(cfg)

	engine, err := reservationservice.NewEngine(cfg.Booking.WorkdayStart, cfg.Booking.WorkdayEnd)
	if err != nil {
		return fmt.Errorf("booking window: %w", err)
	}

	var (
		notifier *notificationservice.NotificationService
		worker   *notificationservice.Worker
	)
	if cfg.Cache.RedisAddr != "" {
		notifier = notificationservice.NewNotificationService(cfg.Cache.RedisAddr)
		worker = notificationservice.NewWorker(cfg.Cache.RedisAddr)
		if err := worker.Start(); err != nil {
			return fmt.Errorf("start notification worker: %w", err)
		}
	}

	// One service instance for both surfaces: its mutex is the only
	// serialization point for mutations.
	var hook reservationservice.Notifier
	if notifier != nil {
		hook = notifier
	}
	svc := reservationservice.NewReservationService(repo, engine, monthCache, hook)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	m := middleware.NewMiddleware()
	e.Use(m.RequestID())
	e.Use(m.RequestLogger())

	reservation.Init(e, svc)
	calendar.Init(e, repo, svc, monthCache, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "room", cfg.Room.Name)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	if worker != nil {
		worker.Shutdown()
	}
	if notifier != nil {
		if err := notifier.Close(); err != nil {
			logger.Warn("close notification client", "error", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}

func buildRepository(cfg *config.Config) (repository.ReservationRepositoryInterface, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := database.InitDB(database.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			return nil, err
		}
		repo := repository.NewPostgresRepository(db)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		return repo, nil
	default:
		logger.Info("using file store", "path", cfg.Storage.FilePath)
		return repository.NewJSONFileRepository(cfg.Storage.FilePath), nil
	}
}

func buildCache(cfg *config.Config) cache.Cache {
	if cfg.Cache.RedisAddr == "" {
		return cache.NewMemoryCache()
	}
	c, err := cache.NewRedisCache(cfg.Cache.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, using in-process month cache", "error", err)
		return cache.NewMemoryCache()
	}
	return c
}
