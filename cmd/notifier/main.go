// notifier 消费order.placed事件并发送下单通知
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/xiebiao/shopcore/internal/infrastructure/config"
	"github.com/xiebiao/shopcore/internal/infrastructure/messaging"
	"github.com/xiebiao/shopcore/pkg/logger"
	"github.com/xiebiao/shopcore/pkg/mq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	zlog, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	consumer, err := mq.NewConsumer(
		cfg.RabbitMQ.URL,
		cfg.RabbitMQ.Exchange,
		"topic",
		cfg.RabbitMQ.Queue,
		[]string{messaging.RoutingKeyOrderPlaced},
		zlog,
	)
	if err != nil {
		zlog.Fatal("创建消费者失败", zap.Error(err))
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Consume(ctx, messaging.NewOrderPlacedHandler(zlog)); err != nil {
		zlog.Error("消费中断", zap.Error(err))
	}
	zlog.Info("notifier已退出")
}
