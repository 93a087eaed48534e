package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoServices 运行器没有任何可运行的服务
var ErrNoServices = errors.New("no services to run")

// Service 可由 Runner 托管的长驻服务
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Runner 并发启动服务，任一服务退出即整体停止
type Runner struct {
	services []Service
}

// NewRunner 创建服务运行器，nil 服务会被忽略
func NewRunner(services ...Service) *Runner {
	runner := &Runner{}
	for _, svc := range services {
		if svc != nil {
			runner.services = append(runner.services, svc)
		}
	}
	return runner
}

// RunWithOptions 监听系统信号后运行
func RunWithOptions(runner *Runner, opts Options) error {
	if runner == nil {
		return ErrNoServices
	}
	opts = opts.withDefaults()
	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, opts.Signals...)
		defer stop()
	}
	return runner.Run(ctx, opts.ShutdownTimeout, opts.Logger)
}

// Run 启动全部服务，ctx 取消或任一服务返回后依次调用 Stop
func (r *Runner) Run(ctx context.Context, stopTimeout time.Duration, log *zap.SugaredLogger) error {
	if r == nil || len(r.services) == 0 {
		return ErrNoServices
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if stopTimeout <= 0 {
		stopTimeout = 10 * time.Second
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	group, groupCtx := errgroup.WithContext(runCtx)
	for _, svc := range r.services {
		svc := svc
		group.Go(func() error {
			defer cancel()
			log.Infow("service_start", "service", svc.Name())
			err := svc.Start(groupCtx)
			log.Infow("service_exit", "service", svc.Name(), "error", err)
			if err != nil {
				return fmt.Errorf("%s: %w", svc.Name(), err)
			}
			return nil
		})
	}

	<-groupCtx.Done()
	stopCtx, stopCancel := context.WithTimeout(context.Background(), stopTimeout)
	defer stopCancel()
	for _, svc := range r.services {
		if err := svc.Stop(stopCtx); err != nil {
			log.Errorw("service_stop_failed", "service", svc.Name(), "error", err)
		}
	}

	err := group.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// HTTPService 托管 gin 引擎的 HTTP 服务
type HTTPService struct {
	server *http.Server
	log    *zap.SugaredLogger
}

// NewHTTPService 创建 HTTP 服务
func NewHTTPService(addr string, handler http.Handler, log *zap.SugaredLogger) *HTTPService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &HTTPService{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
}

// Name 服务名称
func (s *HTTPService) Name() string { return "http" }

// Start 监听端口并阻塞到 Shutdown
func (s *HTTPService) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	s.log.Infow("http_listening", "addr", listener.Addr().String())
	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop 优雅关闭，等待进行中的请求完成
func (s *HTTPService) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
