package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gemdesk/internal/config"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	defaultPrefix = "gd"
	pingTimeout   = 3 * time.Second
)

// store 一次 InitRedis 得到的连接与键前缀
type store struct {
	client *redis.Client
	prefix string
}

func (s *store) key(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.prefix
	}
	return s.prefix + ":" + raw
}

var (
	current atomic.Pointer[store]
	loads   singleflight.Group
)

func active() *store {
	return current.Load()
}

func redisAddr(cfg *config.RedisConfig) string {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// InitRedis 未启用时缓存全部降级为直读；Ping 不通返回错误且保持禁用
func InitRedis(cfg *config.RedisConfig) error {
	if old := current.Swap(nil); old != nil {
		_ = old.client.Close()
	}
	if cfg == nil || !cfg.Enabled {
		return nil
	}
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = defaultPrefix
	}

	client := redis.NewClient(&redis.Options{Addr: redisAddr(cfg), Password: cfg.Password, DB: cfg.DB})
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("ping redis %s: %w", client.Options().Addr, err)
	}
	current.Store(&store{client: client, prefix: prefix})
	return nil
}

func Enabled() bool {
	return active() != nil
}

// Client 未启用时为 nil
func Client() *redis.Client {
	if s := active(); s != nil {
		return s.client
	}
	return nil
}

// GetJSON 未启用或未命中时 hit 为 false
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	s := active()
	if s == nil {
		return false, nil
	}
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode cache %s: %w", key, err)
	}
	return true, nil
}

func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	s := active()
	if s == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(key), payload, ttl).Err()
}

func Del(ctx context.Context, key string) error {
	s := active()
	if s == nil {
		return nil
	}
	return s.client.Del(ctx, s.key(key)).Err()
}

// Remember 未命中时同一键的并发加载合并为一次，缓存读写失败不影响结果
func Remember[T any](ctx context.Context, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	var cached T
	if hit, err := GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}
	if !Enabled() {
		return load()
	}
	value, err, _ := loads.Do(key, func() (interface{}, error) {
		fresh, err := load()
		if err != nil {
			return nil, err
		}
		_ = SetJSON(ctx, key, fresh, ttl)
		return fresh, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return value.(T), nil
}

// Close 断开连接，之后缓存回到禁用状态
func Close() error {
	old := current.Swap(nil)
	if old == nil {
		return nil
	}
	return old.client.Close()
}
