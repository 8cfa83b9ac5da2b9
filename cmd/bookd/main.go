package main

import (
	"context"
	"flag"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marketgrid/depthbook/config"
	"github.com/marketgrid/depthbook/pkg/bookd"
	fixgateway "github.com/marketgrid/depthbook/pkg/bookd/fix"
	redis_wrapper "github.com/marketgrid/depthbook/pkg/infra/redis"
	"github.com/marketgrid/depthbook/pkg/logging"
	"github.com/marketgrid/depthbook/pkg/marketdata"
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

	go func() {
		http.ListenAndServe("localhost:6060", nil) // nolint
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	gateway := fixgateway.NewGateway(&fixgateway.GatewayConfig{
		ConfigFilepath: cfg.Fix.ConfigFilepath,
	})
	service := bookd.NewService(gateway, &bookd.ServiceConfig{
		DepthLevels: cfg.DepthLevels,
	})
	gateway.AttachService(service)

	publisher := marketdata.NewKafkaPublisher(marketdata.PublisherConfig{
		Brokers:    cfg.Kafka.Brokers,
		DepthTopic: cfg.Kafka.DepthTopic,
		EventTopic: cfg.Kafka.EventTopic,
	})
	service.AddDepthSink(publisher)
	service.AddEventSink(publisher)

	if cfg.Redis != nil {
		rdb, err := redis_wrapper.Init(cfg.Redis)
		if err != nil {
			zap.S().Fatalw("init redis failed", "err", err)
		}
		ttl := time.Duration(cfg.DepthTTLSeconds) * time.Second
		service.AddDepthSink(marketdata.NewDepthCache(rdb, ttl))
	}

	if err := service.Start(ctx); err != nil {
		zap.S().Fatalw("start service failed", "err", err)
	}
	zap.S().Info("bookd started")

	<-sigs
	zap.S().Info("shutting down...")

	gateway.Stop()
	publisher.Close() // nolint
	cancel()

	zap.S().Info("exited cleanly")
}
