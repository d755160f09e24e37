package main

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/richardliu001/newsletter-service/internal/config"
	"github.com/richardliu001/newsletter-service/internal/logger"
	"github.com/richardliu001/newsletter-service/internal/repo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/segmentio/kafka-go"
)

func main() {
	configPath := flag.String("config", "internal/config/config.yaml", "path to the yaml config file")
	batch := flag.Int("batch", 100, "outbox rows relayed per tick")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Errorf("load config: %w", err))
	}

	log, err := logger.Init(cfg.Log.Level)
	if err != nil {
		panic(fmt.Errorf("init logger: %w", err))
	}
	defer log.Sync()

	gdb, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{PrepareStmt: true})
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}

	kw := &kafka.Writer{
		Addr:     kafka.TCP(cfg.Kafka.Brokers...),
		Topic:    cfg.Kafka.Topic,
		Balancer: &kafka.LeastBytes{},
	}
	defer kw.Close()

	repository := repo.NewRepository(gdb, nil, kw, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Infof("newsletter-poller started, topic=%s", cfg.Kafka.Topic)
	repository.RunRelay(ctx, *batch)
	log.Info("newsletter-poller stopped")
}
