package models

import (
	"fmt"
	"strings"
	"time"

	applog "github.com/gemdesk/internal/logger"

	"github.com/glebarez/sqlite" // 纯 Go SQLite 驱动（基于 modernc.org/sqlite）
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB 进程级数据库连接，由 InitDB 设置
var DB *gorm.DB

// DBOptions 数据库连接参数
type DBOptions struct {
	Driver          string // sqlite / mysql / postgres
	DSN             string
	LogLevel        string // silent / error / warn / info
	SlowThreshold   time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// InitDB 打开连接、迁移全部模型并设为全局 DB
func InitDB(opts DBOptions) error {
	db, err := Open(opts)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	DB = db
	return nil
}

// Open 按驱动打开连接并应用连接池设置，SQL 日志写入 zap
func Open(opts DBOptions) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", "sqlite":
		dialector = sqlite.Open(opts.DSN)
	case "mysql":
		dialector = mysql.Open(opts.DSN)
	case "postgres", "postgresql":
		dialector = postgres.Open(opts.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", opts.Driver)
	}

	slow := opts.SlowThreshold
	if slow <= 0 {
		slow = 200 * time.Millisecond
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(applog.StdLogger(), gormlogger.Config{
			SlowThreshold:             slow,
			LogLevel:                  gormLogLevel(opts.LogLevel),
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", opts.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
	if opts.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}
	return db, nil
}

func gormLogLevel(raw string) gormlogger.LogLevel {
	levels := map[string]gormlogger.LogLevel{
		"silent": gormlogger.Silent,
		"error":  gormlogger.Error,
		"info":   gormlogger.Info,
	}
	if level, ok := levels[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return level
	}
	return gormlogger.Warn
}

// AllModels 参与迁移的模型，顺序即建表顺序
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Attribute{},
		&AttributeOption{},
		&Category{},
		&CategoryStyle{},
		&CategoryMetal{},
		&Product{},
		&ProductVariant{},
		&HomepageSection{},
		&CollectionCategory{},
		&Blog{},
		&FAQ{},
		&Review{},
		&Enquiry{},
		&Order{},
		&Setting{},
		&UserLoginLog{},
		&RPCAuditLog{},
	}
}
