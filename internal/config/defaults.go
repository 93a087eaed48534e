package config

import "github.com/spf13/viper"

// defaultSections 按顶层节组织的默认值，键名与 config.yml 一致
var defaultSections = map[string]map[string]interface{}{
	"server": {
		"host": "0.0.0.0",
		"port": "8080",
		"mode": "debug",
	},
	"log": {
		"level":        "",
		"dir":          "",
		"filename":     "gemdesk.log",
		"max_size_mb":  100,
		"max_backups":  7,
		"max_age_days": 30,
		"compress":     true,
		"stdout":       false,
	},
	"database": {
		"driver":                          "sqlite",
		"dsn":                             "./db/gemdesk.db",
		"log_level":                       "warn",
		"pool.max_open_conns":             1,
		"pool.max_idle_conns":             1,
		"pool.conn_max_lifetime_seconds":  0,
		"pool.conn_max_idle_time_seconds": 0,
	},
	"jwt": {
		"secret":       "change-me-in-production",
		"expire_hours": 24,
	},
	"admin": {
		"email":    "",
		"password": "",
	},
	"redis": {
		"enabled":  true,
		"host":     "127.0.0.1",
		"port":     6379,
		"password": "",
		"db":       0,
		"prefix":   "gd",
	},
	"queue": {
		"enabled":     true,
		"host":        "127.0.0.1",
		"port":        6379,
		"password":    "",
		"db":          1,
		"concurrency": 10,
		"queues":      map[string]int{"default": 10, "critical": 5},
	},
	"upload": {
		"dir":                "uploads",
		"max_size":           10 << 20,
		"max_files":          10,
		"allowed_types":      []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
		"allowed_extensions": []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
		"max_width":          6000,
		"max_height":         6000,
	},
	"cors": {
		"allowed_origins": []string{"*"},
		"allowed_methods": []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		"allowed_headers": []string{
			"Content-Type", "Content-Length", "Accept-Encoding", "Authorization",
			"Cache-Control", "X-Requested-With", "X-Request-ID", "X-Locale",
		},
		"allow_credentials": true,
		"max_age":           600,
	},
	"security": {
		"login_rate_limit.window_seconds": 300,
		"login_rate_limit.max_attempts":   5,
		"login_rate_limit.block_seconds":  900,
		"rpc_rate_limit.window_seconds":   60,
		"rpc_rate_limit.max_attempts":     600,
		"rpc_rate_limit.block_seconds":    0,
		"password_policy.min_length":      8,
		"password_policy.require_upper":   true,
		"password_policy.require_lower":   true,
		"password_policy.require_number":  true,
		"password_policy.require_special": false,
	},
	"email": {
		"enabled":     false,
		"host":        "",
		"port":        587,
		"username":    "",
		"password":    "",
		"from":        "",
		"from_name":   "Gemdesk",
		"use_tls":     true,
		"use_ssl":     false,
		"admin_email": "",
	},
	"captcha": {
		"provider":             "none",
		"scenes.login":         false,
		"image.length":         5,
		"image.width":          240,
		"image.height":         80,
		"image.noise_count":    2,
		"image.show_line":      2,
		"image.expire_seconds": 300,
		"image.max_store":      10240,
	},
	"events": {
		"enabled":            false,
		"brokers":            []string{"127.0.0.1:9092"},
		"topic":              "gemdesk.catalog",
		"write_timeout_ms":   5000,
		"batch_timeout_ms":   50,
		"required_acks_all":  false,
		"allow_auto_topic":   true,
		"publish_timeout_ms": 3000,
	},
	"catalog": {
		"cache_ttl_seconds": 600,
	},
	"client": {
		"base_url":        "http://127.0.0.1:8080",
		"timeout_seconds": 30,
		"token_file":      "",
	},
}

// setDefaults 每个键都要有默认值，AutomaticEnv 才能在 Unmarshal 时覆盖它
func setDefaults(v *viper.Viper) {
	for section, values := range defaultSections {
		for key, value := range values {
			v.SetDefault(section+"."+key, value)
		}
	}
}
