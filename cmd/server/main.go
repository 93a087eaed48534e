package main

import (
	"flag"
	"fmt"
	"os"
	"syscall"

	"github.com/gemdesk/internal/app"
	"github.com/gemdesk/internal/config"
	"github.com/gemdesk/internal/logger"
	"github.com/gemdesk/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const banner = `
   ____               ____            _
  / ___| ___ _ __ ___|  _ \  ___  ___| | __
 | |  _ / _ \ '_ ' _ \ | | |/ _ \/ __| |/ /
 | |_| |  __/ | | | | | |_| |  __/\__ \   <
  \____|\___|_| |_| |_|____/ \___||___/_|\_\
`

func main() {
	mode := flag.String("mode", string(app.ModeAll), "启动模式: all / api / worker")
	quiet := flag.Bool("quiet", false, "不打印启动横幅")
	flag.Parse()

	if !*quiet {
		fmt.Print("\033[36m" + banner + "\033[0m")
		fmt.Println("  GemDesk admin API   POST /doAll · POST /upload-images · /api/v1/admin")
	}

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	log := logger.S()
	defer func() { _ = logger.Z().Sync() }()

	if cfg.JWT.Weak() {
		if cfg.Server.IsRelease() {
			log.Fatalw("jwt_secret_weak", "hint", "configure a random secret of at least 32 bytes")
		}
		log.Warnw("jwt_secret_weak", "mode", cfg.Server.Mode)
	}

	if err := models.InitDB(cfg.Database.Options()); err != nil {
		log.Fatalw("database_init_failed", "driver", cfg.Database.Driver, "error", err)
	}
	seedAdmin(cfg, log)

	if cfg.Server.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}
	err := app.Run(app.Options{
		Config:  cfg,
		Logger:  log,
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    *mode,
	})
	if err != nil {
		log.Fatalw("server_exited", "error", err)
	}
}

// seedAdmin release 模式下必须显式提供管理员密码
func seedAdmin(cfg *config.Config, log *zap.SugaredLogger) {
	if cfg.Server.IsRelease() && cfg.Admin.Password == "" {
		log.Warnw("default_admin_skipped", "reason", "ADMIN_PASSWORD not set")
		return
	}
	result, err := models.EnsureDefaultAdmin(models.DB, cfg.Admin.Email, cfg.Admin.Password)
	switch {
	case err != nil:
		log.Warnw("default_admin_init_failed", "error", err)
	case result.Created && result.DefaultPassword:
		log.Warnw("default_admin_created_with_default_password", "email", result.Email)
	case result.Created:
		log.Warnw("default_admin_created", "email", result.Email)
	}
}
