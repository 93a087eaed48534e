package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options 日志输出配置
type Options struct {
	Level      string
	Dir        string // 为空时使用 ./logs
	Filename   string // 为空时使用 gemdesk.log
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	Stdout     bool // release 模式下同时输出到标准输出
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.Dir) == "" {
		o.Dir = "logs"
	}
	if strings.TrimSpace(o.Filename) == "" {
		o.Filename = "gemdesk.log"
	}
	if o.MaxSizeMB <= 0 {
		o.MaxSizeMB = 100
	}
	if o.MaxBackups <= 0 {
		o.MaxBackups = 7
	}
	if o.MaxAgeDays <= 0 {
		o.MaxAgeDays = 30
	}
	return o
}

var current atomic.Pointer[zap.Logger]

// Init 构建日志实例并设为全局
func Init(mode string, options Options) *zap.Logger {
	l := New(mode, options)
	current.Store(l)
	zap.ReplaceGlobals(l)
	return l
}

// New 创建日志实例：debug 模式输出彩色控制台，其余模式写入滚动文件
func New(mode string, options Options) *zap.Logger {
	debug := strings.EqualFold(strings.TrimSpace(mode), "debug")
	level := zap.NewAtomicLevelAt(resolveLevel(options.Level, debug))
	enc := encoderConfig()

	var core zapcore.Core
	if debug {
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		core = zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stdout), level)
	} else {
		cores := make([]zapcore.Core, 0, 2)
		sink, err := openRotatingFile(options.withDefaults())
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file unavailable, writing to stdout: %v\n", err)
			options.Stdout = true
		} else {
			cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(sink), level))
		}
		if options.Stdout {
			cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(os.Stdout), level))
		}
		core = zapcore.NewTee(cores...)
	}
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
}

// Z 返回全局日志，未初始化时返回 info 级别控制台日志
func Z() *zap.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	l := New("debug", Options{Level: "info"})
	if current.CompareAndSwap(nil, l) {
		return l
	}
	return current.Load()
}

// Ready 是否已调用 Init
func Ready() bool {
	return current.Load() != nil
}

// S 全局 SugaredLogger
func S() *zap.SugaredLogger { return Z().Sugar() }

// SW 附带上下文字段的 SugaredLogger
func SW(kv ...interface{}) *zap.SugaredLogger {
	if len(kv) == 0 {
		return S()
	}
	return S().With(kv...)
}

// StdLogger 标准库 log 适配，供 gorm 等第三方输出
func StdLogger() *log.Logger {
	return zap.NewStdLog(Z())
}

func Debugw(msg string, kv ...interface{}) { S().Debugw(msg, kv...) }
func Infow(msg string, kv ...interface{})  { S().Infow(msg, kv...) }
func Warnw(msg string, kv ...interface{})  { S().Warnw(msg, kv...) }
func Errorw(msg string, kv ...interface{}) { S().Errorw(msg, kv...) }

func resolveLevel(raw string, debug bool) zapcore.Level {
	if lvl, err := zapcore.ParseLevel(strings.TrimSpace(raw)); err == nil && strings.TrimSpace(raw) != "" {
		return lvl
	}
	if debug {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.MessageKey = "message"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.MillisDurationEncoder
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	return cfg
}

// openRotatingFile 创建日志目录并确认文件可写
func openRotatingFile(options Options) (*lumberjack.Logger, error) {
	path := filepath.Join(options.Dir, options.Filename)
	if err := os.MkdirAll(options.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir %s: %w", options.Dir, err)
	}
	probe, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	_ = probe.Close()
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    options.MaxSizeMB,
		MaxBackups: options.MaxBackups,
		MaxAge:     options.MaxAgeDays,
		Compress:   options.Compress,
	}, nil
}
