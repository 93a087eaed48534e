package router

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/gemdesk/internal/config"
	"github.com/gemdesk/internal/http/response"
	"github.com/gemdesk/internal/i18n"
	"github.com/gemdesk/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 从请求中提取限流维度，返回空串时回落到客户端 IP
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 固定窗口限流规则
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	BlockSeconds  int    // 超限后额外封禁时长，0 表示只等窗口过期
	MessageKey    string // 需要带一个 %d 等待秒数
}

// NewRateLimitRule 由配置生成规则
func NewRateLimitRule(prefix string, cfg config.RateLimitConfig, messageKey string) RateLimitRule {
	return RateLimitRule{
		Prefix:        prefix,
		WindowSeconds: cfg.WindowSeconds,
		MaxRequests:   cfg.MaxAttempts,
		BlockSeconds:  cfg.BlockSeconds,
		MessageKey:    messageKey,
	}
}

func (r RateLimitRule) enabled() bool {
	return r.WindowSeconds > 0 && r.MaxRequests > 0
}

// 返回 {是否放行, 需等待秒数}；KEYS[1] 计数键，KEYS[2] 封禁键
var rateLimitScript = redis.NewScript(`
local blocked = redis.call("TTL", KEYS[2])
if blocked > 0 then
	return {0, blocked}
end
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
if current <= tonumber(ARGV[2]) then
	return {1, 0}
end
local block = tonumber(ARGV[3])
if block > 0 then
	redis.call("SET", KEYS[2], "1", "EX", block)
	return {0, block}
end
return {0, redis.call("TTL", KEYS[1])}
`)

// RateLimitMiddleware Redis 限流中间件，未配置 Redis 时放行
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc, reject RejectResponder) gin.HandlerFunc {
	if reject == nil {
		reject = envelopeReject
	}
	return func(c *gin.Context) {
		if client == nil || !rule.enabled() {
			c.Next()
			return
		}
		key := ""
		if keyFunc != nil {
			key = strings.TrimSpace(keyFunc(c))
		}
		if key == "" {
			key = c.ClientIP()
		}
		if rule.Prefix != "" {
			key = rule.Prefix + ":" + key
		}

		locale := i18n.ResolveLocale(c)
		allowed, wait, err := runRateLimit(c, client, rule, key)
		if err != nil {
			logger.Errorw("rate_limit_script_failed", "key", key, "error", err)
			reject(c, response.CodeInternal, i18n.T(locale, "error.rate_limit_unavailable"))
			return
		}
		if !allowed {
			if wait < 1 {
				wait = int64(rule.WindowSeconds)
			}
			msgKey := strings.TrimSpace(rule.MessageKey)
			if msgKey == "" {
				msgKey = "error.rate_limited"
			}
			logger.Warnw("rate_limited", "key", key, "wait_seconds", wait)
			reject(c, response.CodeTooManyRequests, i18n.Sprintf(locale, msgKey, wait))
			return
		}
		c.Next()
	}
}

func runRateLimit(c *gin.Context, client *redis.Client, rule RateLimitRule, key string) (bool, int64, error) {
	values, err := rateLimitScript.Run(c.Request.Context(), client,
		[]string{key, key + ":block"},
		rule.WindowSeconds, rule.MaxRequests, rule.BlockSeconds,
	).Int64Slice()
	if err != nil {
		return false, 0, err
	}
	if len(values) < 2 {
		return false, 0, redis.Nil
	}
	return values[0] == 1, values[1], nil
}

// RejectResponder 限流拒绝时的响应方式
type RejectResponder func(c *gin.Context, code int, msg string)

func envelopeReject(c *gin.Context, code int, msg string) {
	response.Error(c, code, msg)
	c.Abort()
}

func rpcReject(c *gin.Context, _ int, msg string) {
	response.RPCError(c, msg)
	c.Abort()
}

// KeyByIP 按客户端 IP 限流
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByUser 按登录用户限流，须挂在鉴权中间件之后
func KeyByUser(c *gin.Context) string {
	if id := c.GetUint("user_id"); id > 0 {
		return "u" + strconv.FormatUint(uint64(id), 10)
	}
	return ""
}

// KeyByIPAndJSONField 按 JSON 字段与 IP 组合限流，读取后恢复请求体
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(peekJSONField(c, field))
		if value == "" {
			return c.ClientIP()
		}
		return value + "|" + c.ClientIP()
	}
}

func peekJSONField(c *gin.Context, field string) string {
	if c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil || len(body) == 0 {
		return ""
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	var text string
	if err := json.Unmarshal(payload[field], &text); err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
