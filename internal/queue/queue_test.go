package queue

import (
	"testing"

	"github.com/gemdesk/internal/config"
	"github.com/gemdesk/internal/constants"

	"github.com/hibiken/asynq"
)

func TestOrderStatusTaskPayload(t *testing.T) {
	task, err := NewOrderStatusEmailTask(OrderStatusEmailPayload{OrderID: 7, Status: "shipped"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if task.Type() != TaskOrderStatusEmail {
		t.Fatalf("unexpected task type %s", task.Type())
	}
	payload, err := DecodePayload[OrderStatusEmailPayload](task)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if payload.OrderID != 7 || payload.Status != "shipped" {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if _, err := DecodePayload[VendorReviewEmailPayload](asynq.NewTask(TaskVendorReviewEmail, []byte("nope"))); err == nil {
		t.Fatalf("malformed payload should fail")
	}
}

func TestDisabledClientIsNoop(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueOrderStatusEmail(OrderStatusEmailPayload{OrderID: 1, Status: "delivered"}); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("disabled close should be noop: %v", err)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{Host: "redis", Port: 6380, Concurrency: 4})
	if opt.Addr != "redis:6380" {
		t.Fatalf("unexpected addr %s", opt.Addr)
	}
	if cfg.Concurrency != 4 {
		t.Fatalf("concurrency want 4 got %d", cfg.Concurrency)
	}
	if cfg.Queues[constants.QueueCritical] <= cfg.Queues[constants.QueueDefault] {
		t.Fatalf("critical queue should have higher priority: %v", cfg.Queues)
	}
}

func TestVendorReviewTaskPayload(t *testing.T) {
	task, err := NewVendorReviewEmailTask(VendorReviewEmailPayload{
		UserID:       9,
		VendorStatus: constants.VendorStatusRejected,
		Reason:       "missing GST",
	})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	payload, err := DecodePayload[VendorReviewEmailPayload](task)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if payload.UserID != 9 || payload.Reason != "missing GST" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if err := (&Client{}).EnqueueVendorReviewEmail(payload); err != nil {
		t.Fatalf("zero client enqueue should be noop: %v", err)
	}
}

func TestBuildServerConfigNil(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" || cfg.Concurrency != 10 {
		t.Fatalf("unexpected defaults: %s %d", opt.Addr, cfg.Concurrency)
	}
}
