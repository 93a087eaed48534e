package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gemdesk/internal/config"
	"github.com/gemdesk/internal/logger"

	"go.uber.org/zap"
)

// Mode 进程运行模式
type Mode string

const (
	ModeAll    Mode = "all"    // HTTP 与队列消费者
	ModeAPI    Mode = "api"    // 仅 HTTP
	ModeWorker Mode = "worker" // 仅队列消费者
)

// ParseMode 空串视为 all
func ParseMode(raw string) (Mode, error) {
	switch mode := Mode(strings.ToLower(strings.TrimSpace(raw))); mode {
	case "":
		return ModeAll, nil
	case ModeAll, ModeAPI, ModeWorker:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown run mode %q", raw)
	}
}

func (m Mode) servesHTTP() bool { return m == ModeAll || m == ModeAPI }

func (m Mode) consumesQueue() bool { return m == ModeAll || m == ModeWorker }

// Options 启动参数
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration // 默认 10s
	Mode            string
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = logger.S()
	}
	if o.ShutdownTimeout <= 0 {
		o.ShutdownTimeout = 10 * time.Second
	}
	return o
}
