package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/richardliu001/newsletter-service/internal/config"
	"github.com/richardliu001/newsletter-service/internal/email"
	"github.com/richardliu001/newsletter-service/internal/logger"
	"github.com/richardliu001/newsletter-service/internal/metrics"
	"github.com/richardliu001/newsletter-service/internal/repo"
	"github.com/richardliu001/newsletter-service/internal/service"
	httptransport "github.com/richardliu001/newsletter-service/internal/transport/http"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configPath := flag.String("config", "internal/config/config.yaml", "path to the yaml config file")
	flag.Parse()

	// 1. load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Errorf("load config: %w", err))
	}

	// 2. init logger
	log, err := logger.Init(cfg.Log.Level)
	if err != nil {
		panic(fmt.Errorf("init logger: %w", err))
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. postgres
	gdb, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{PrepareStmt: true})
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		log.Fatalf("postgres pool: %v", err)
	}
	if cfg.Database.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}
	defer sqlDB.Close()

	// 4. redis token cache, optional
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warnf("redis ping: %v; token lookups will hit postgres", err)
		}
		defer rdb.Close()
	}

	// 5. repo & migrations
	repository := repo.NewRepository(gdb, rdb, nil, log).WithTokenTTL(cfg.Redis.TokenTTL())
	if err := repository.Migrate(); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	// 6. email
	sender, err := email.New(ctx, cfg.EmailClient, log)
	if err != nil {
		log.Fatalf("email client: %v", err)
	}
	templates, err := email.NewTemplates()
	if err != nil {
		log.Fatalf("email templates: %v", err)
	}

	// 7. service & router
	m := metrics.New(prometheus.DefaultRegisterer)
	svc := service.NewSubscriptionService(repository, sender, templates, cfg.Application.BaseURL, log).WithMetrics(m)
	router := httptransport.NewRouter(svc, prometheus.DefaultGatherer, log)

	// 8. serve until signalled
	srv := &http.Server{Addr: cfg.Application.Addr(), Handler: router}
	go func() {
		log.Infof("newsletter-server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
}
