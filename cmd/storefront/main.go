package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/httpserver"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/search"
	"github.com/Skotchmaster/storefront/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err == nil {
		err = db.Migrate(ctx, gdb)
	}
	cancel()
	if err != nil {
		log.Fatalf("db init: %v", err)
	}

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers)
		logger.Info("kafka_enabled", "brokers", cfg.KafkaBrokers)
	}

	var index *search.Index
	if cfg.ESURL != "" {
		index, err = search.New(search.Config{
			URL:      cfg.ESURL,
			User:     cfg.ESUser,
			Password: cfg.ESPassword,
			Index:    cfg.ESIndex,
		})
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		logger.Info("elasticsearch_enabled", "url", cfg.ESURL, "index", cfg.ESIndex)
	}

	r := &repo.GormRepo{DB: gdb}
	catalog := &service.CatalogService{Repo: r, Events: publisher}
	if index != nil {
		catalog.Index = index
	}

	e := httpserver.NewEcho(httpserver.Options{
		Logger:         logger,
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	httpserver.Register(e, &httpserver.Deps{
		CartHandler:    &httpserver.CartHTTP{Svc: &service.CartService{Repo: r, Events: publisher}},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalog},
		JWTSecret:      cfg.JWTSecret,
		Ready:          readiness(gdb, index),
	})

	if len(cfg.JWTSecret) == 0 {
		logger.Warn("JWT_SECRET is empty, product creation is not guarded")
	}

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("storefront listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown_error", "error", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Error("publisher_close_error", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db_close_error", "error", err)
	}

	logger.Info("storefront stopped")
}

func readiness(gdb *gorm.DB, index *search.Index) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return err
		}
		if index != nil {
			return index.Ping(ctx)
		}
		return nil
	}
}
