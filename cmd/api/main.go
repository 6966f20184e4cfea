package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/shopcore/internal/infrastructure/config"
	"github.com/xiebiao/shopcore/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/shopcore/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/shopcore/internal/interface/http/middleware"
	"github.com/xiebiao/shopcore/internal/interface/http/router"
	"github.com/xiebiao/shopcore/internal/interface/rpc"
	"github.com/xiebiao/shopcore/pkg/logger"
	"github.com/xiebiao/shopcore/pkg/tracing"
)

// @title                       shopcore API
// @version                     1.0
// @description                 多卖家电商结算核心：下单、库存、优惠券
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

// main 手动依赖注入，wire.go中的InitializeApp描述同一张依赖图
func main() {
	// 1. 配置与日志
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
	restore := logger.ReplaceGlobals(zlog)
	defer restore()

	if err := middleware.RegisterValidators(); err != nil {
		zlog.Fatal("注册校验规则失败", zap.Error(err))
	}

	// 2. 链路追踪
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			zlog.Fatal("初始化Tracer失败", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(ctx)
		}()
	}

	// 3. MySQL、Redis
	db, err := mysql.NewDB(cfg, zlog)
	if err != nil {
		zlog.Fatal("初始化数据库失败", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zlog.Fatal("获取数据库连接池失败", zap.Error(err))
	}
	defer sqlDB.Close()

	redisClient, err := redis.NewClient(cfg, zlog)
	if err != nil {
		zlog.Fatal("初始化Redis失败", zap.Error(err))
	}
	defer redisClient.Close()

	// 4. 下单通知（RabbitMQ未启用时只记日志）
	notifier, closeNotifier, err := provideNotifier(cfg, zlog)
	if err != nil {
		zlog.Fatal("初始化消息队列失败", zap.Error(err))
	}
	defer closeNotifier()

	// 5. 组装
	// Repository ← Service ← UseCase ← Handler
	sessionStore := provideSessionStore(redisClient)
	jwtManager := provideJWTManager(cfg)
	handlers := buildHandlers(cfg, db, sessionStore, jwtManager, notifier, zlog)
	engine := router.New(cfg, handlers, middleware.NewAuthMiddleware(jwtManager, sessionStore), zlog)

	// 6. 启动并优雅退出
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Server.GRPCPort > 0 {
		lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRPCPort))
		if err != nil {
			zlog.Fatal("监听gRPC端口失败", zap.Error(err))
		}
		healthServer := rpc.NewHealthServer(map[string]rpc.Checker{
			"mysql": sqlDB.PingContext,
			"redis": func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		}, 10*time.Second, zlog)
		go func() {
			if err := healthServer.Serve(ctx, lis); err != nil {
				zlog.Error("gRPC健康检查退出", zap.Error(err))
			}
		}()
	}

	go func() {
		zlog.Info("服务启动", zap.String("addr", srv.Addr), zap.String("mode", cfg.Server.Mode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("服务异常退出", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("收到退出信号，开始关闭")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("HTTP服务关闭失败", zap.Error(err))
	}
}
