package app

import (
	"context"
	"errors"

	"github.com/gemdesk/internal/config"
	"github.com/gemdesk/internal/models"
	"github.com/gemdesk/internal/provider"
	"github.com/gemdesk/internal/router"
	"github.com/gemdesk/internal/worker"

	"go.uber.org/zap"
)

// BuildRunner 按运行模式组装 HTTP 与 Worker 服务
func BuildRunner(cfg *config.Config, mode Mode, log *zap.SugaredLogger) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if mode.consumesQueue() && !mode.servesHTTP() && !cfg.Queue.Enabled {
		return nil, errors.New("worker mode requires queue.enabled")
	}

	container, err := provider.NewContainer(cfg, models.DB)
	if err != nil {
		return nil, err
	}
	services := []Service{&containerService{container: container}}

	if mode.servesHTTP() {
		engine := router.SetupRouter(cfg, container)
		services = append(services, NewHTTPService(cfg.Server.Addr(), engine, log))
	}

	if mode.consumesQueue() && cfg.Queue.Enabled {
		workerService, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container))
		if err != nil {
			container.Close()
			return nil, err
		}
		services = append(services, workerService)
	}

	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = opts.withDefaults()
	mode, err := ParseMode(opts.Mode)
	if err != nil {
		return err
	}
	runner, err := BuildRunner(opts.Config, mode, opts.Logger)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start", "addr", opts.Config.Server.Addr(), "mode", mode)
	return RunWithOptions(runner, opts)
}

// containerService 在运行器停止时释放 Kafka 与队列连接
type containerService struct {
	container *provider.Container
}

func (s *containerService) Name() string { return "container" }

func (s *containerService) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (s *containerService) Stop(context.Context) error {
	if s.container != nil {
		s.container.Close()
	}
	return nil
}
