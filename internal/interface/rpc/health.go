// Package rpc gRPC接口：grpc.health.v1健康检查
package rpc

import (
	"context"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Checker 依赖探活，返回nil表示可用
type Checker func(ctx context.Context) error

// HealthServer 周期性探测MySQL、Redis等依赖，通过grpc.health.v1对外报告
// 服务名""代表整体状态，任一依赖不可用即NOT_SERVING
type HealthServer struct {
	server   *grpc.Server
	health   *health.Server
	checks   map[string]Checker
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger

	mu   sync.Mutex
	last map[string]bool
}

// NewHealthServer interval<=0时每10秒探测一次
func NewHealthServer(checks map[string]Checker, interval time.Duration, logger *zap.Logger) *HealthServer {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	s := &HealthServer{
		server:   grpc.NewServer(),
		health:   health.NewServer(),
		checks:   checks,
		interval: interval,
		timeout:  2 * time.Second,
		logger:   logger,
		last:     make(map[string]bool, len(checks)),
	}
	healthpb.RegisterHealthServer(s.server, s.health)
	return s
}

// CheckAll 执行一轮检查并更新状态，返回整体是否可用
func (s *HealthServer) CheckAll(ctx context.Context) bool {
	healthy := true
	for name, check := range s.checks {
		checkCtx, cancel := context.WithTimeout(ctx, s.timeout)
		err := check(checkCtx)
		cancel()

		ok := err == nil
		s.report(name, ok, err)
		healthy = healthy && ok
	}
	s.health.SetServingStatus("", status(healthy))
	return healthy
}

// report 只在状态变化时记日志
func (s *HealthServer) report(name string, ok bool, err error) {
	s.health.SetServingStatus(name, status(ok))

	s.mu.Lock()
	prev, seen := s.last[name]
	s.last[name] = ok
	s.mu.Unlock()

	if seen && prev == ok {
		return
	}
	if ok {
		s.logger.Info("依赖可用", zap.String("dependency", name))
	} else {
		s.logger.Warn("依赖不可用", zap.String("dependency", name), zap.Error(err))
	}
}

// Serve 在lis上提供服务直到ctx取消
func (s *HealthServer) Serve(ctx context.Context, lis net.Listener) error {
	s.CheckAll(ctx)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.health.Shutdown()
				s.server.GracefulStop()
				return
			case <-ticker.C:
				s.CheckAll(ctx)
			}
		}
	}()

	s.logger.Info("gRPC健康检查已启动", zap.String("addr", lis.Addr().String()))
	return s.server.Serve(lis)
}

func status(ok bool) healthpb.HealthCheckResponse_ServingStatus {
	if ok {
		return healthpb.HealthCheckResponse_SERVING
	}
	return healthpb.HealthCheckResponse_NOT_SERVING
}
