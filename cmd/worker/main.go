package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/marketgrid/depthbook/config"
	"github.com/marketgrid/depthbook/pkg/bookd/repo"
	"github.com/marketgrid/depthbook/pkg/bookd/worker"
	postgres_wrapper "github.com/marketgrid/depthbook/pkg/infra/postgres"
	"github.com/marketgrid/depthbook/pkg/kafkautil"
	"github.com/marketgrid/depthbook/pkg/logging"
	"go.uber.org/zap"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	logger, err := logging.Init(cfg.LogLevel, cfg.ServiceName)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() // nolint

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	db, err := postgres_wrapper.InitWithBackoff(cfg.JournalDB)
	if err != nil {
		zap.S().Fatalw("init db failed", "err", err)
	}

	sqlRepo := repo.NewRepo(db)

	cg := kafkautil.NewConsumerGroup(kafkautil.ConsumerConfig{
		Brokers:    cfg.Kafka.Brokers,
		GroupID:    cfg.Kafka.GroupID,
		Topic:      cfg.Kafka.EventTopic,
		MaxRetries: 5,
	})
	defer cg.Close() // nolint

	w := worker.NewWorker(sqlRepo)
	zap.S().Info("journal worker started")
	if err := w.Run(ctx, cg); err != nil {
		zap.S().Fatalw("worker stopped", "err", err)
	}
}
