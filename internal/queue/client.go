package queue

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/gemdesk/internal/config"
	"github.com/gemdesk/internal/constants"

	"github.com/hibiken/asynq"
)

// Client asynq 投递端，未启用队列时所有投递静默忽略
type Client struct {
	client *asynq.Client
}

// NewClient 创建投递端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{}, nil
	}
	return &Client{client: asynq.NewClient(redisOpt(cfg))}, nil
}

// Enabled 队列是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// Close 关闭连接
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

// EnqueueOrderStatusEmail 同一订单同一状态只投递一次
func (c *Client) EnqueueOrderStatusEmail(payload OrderStatusEmailPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	taskID := fmt.Sprintf("order-status:%d:%s", payload.OrderID, payload.Status)
	task, err := NewOrderStatusEmailTask(payload, append([]asynq.Option{asynq.TaskID(taskID)}, opts...)...)
	if err != nil {
		return err
	}
	return c.enqueue(task)
}

// EnqueueVendorReviewEmail 投递供应商审核结果邮件
func (c *Client) EnqueueVendorReviewEmail(payload VendorReviewEmailPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewVendorReviewEmailTask(payload, opts...)
	if err != nil {
		return err
	}
	return c.enqueue(task)
}

func (c *Client) enqueue(task *asynq.Task) error {
	_, err := c.client.Enqueue(task)
	if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	return err
}

// BuildServerConfig worker 端连接与并发配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	serverCfg := asynq.Config{
		Concurrency: 10,
		Queues:      map[string]int{constants.QueueCritical: 6, constants.QueueDefault: 3},
	}
	if cfg != nil && cfg.Concurrency > 0 {
		serverCfg.Concurrency = cfg.Concurrency
	}
	if cfg != nil && len(cfg.Queues) > 0 {
		serverCfg.Queues = cfg.Queues
	}
	return redisOpt(cfg), serverCfg
}

func redisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: "127.0.0.1:6379"}
	if cfg == nil {
		return opt
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	opt.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	opt.Password = cfg.Password
	opt.DB = cfg.DB
	return opt
}
