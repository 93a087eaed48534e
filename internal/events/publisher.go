package events

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gemdesk/internal/config"
	"github.com/gemdesk/internal/logger"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const defaultPublishTimeout = 3 * time.Second

// Event 目录变更事件
type Event struct {
	ID         string                 `json:"id"`          // 事件 ID
	Type       string                 `json:"type"`        // 事件类型
	Table      string                 `json:"table"`       // 关联表
	Action     string                 `json:"action"`      // 触发动作
	EntityID   uint                   `json:"entity_id"`   // 实体 ID（批量操作为 0）
	ActorID    uint                   `json:"actor_id"`    // 操作人
	Payload    map[string]interface{} `json:"payload"`     // 附加数据
	OccurredAt time.Time              `json:"occurred_at"` // 发生时间
}

// Publisher 事件发布接口
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NewPublisher 按配置创建发布器，未启用时返回空实现
func NewPublisher(cfg *config.EventsConfig) Publisher {
	if cfg == nil || !cfg.Enabled || len(cfg.Brokers) == 0 {
		return NoopPublisher{}
	}
	return NewKafkaPublisher(cfg)
}

// NoopPublisher 空发布器
type NoopPublisher struct{}

// Publish 丢弃事件
func (NoopPublisher) Publish(context.Context, Event) error { return nil }

// Close 空实现
func (NoopPublisher) Close() error { return nil }

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher 基于 kafka-go Writer 的发布器
type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
}

// NewKafkaPublisher 创建 Kafka 发布器
func NewKafkaPublisher(cfg *config.EventsConfig) *KafkaPublisher {
	topic := strings.TrimSpace(cfg.Topic)
	if topic == "" {
		topic = "gemdesk.catalog"
	}
	acks := kafka.RequireOne
	if cfg.RequiredAcksAll {
		acks = kafka.RequireAll
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           acks,
		AllowAutoTopicCreation: cfg.AllowAutoTopic,
		WriteTimeout:           millis(cfg.WriteTimeoutMS, 10*time.Second),
		BatchTimeout:           millis(cfg.BatchTimeoutMS, 50*time.Millisecond),
	}
	return &KafkaPublisher{
		writer:  writer,
		timeout: millis(cfg.PublishTimeoutMS, defaultPublishTimeout),
	}
}

// Publish 发送事件，按表名分区保证同表有序
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	if p == nil || p.writer == nil {
		return errors.New("kafka publisher not initialized")
	}
	msg, err := buildMessage(event)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Warnw("events_publish_failed", "type", event.Type, "table", event.Table, "error", err)
		return err
	}
	logger.Debugw("events_published", "id", event.ID, "type", event.Type, "table", event.Table)
	return nil
}

// Close 关闭 Writer
func (p *KafkaPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

func buildMessage(event Event) (kafka.Message, error) {
	if strings.TrimSpace(event.ID) == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(event.Table),
		Value: body,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "entity_id", Value: []byte(strconv.FormatUint(uint64(event.EntityID), 10))},
		},
	}, nil
}

func millis(value int, fallback time.Duration) time.Duration {
	if value <= 0 {
		return fallback
	}
	return time.Duration(value) * time.Millisecond
}
