package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/gemdesk/internal/events"
	"github.com/gemdesk/internal/models"
	"github.com/gemdesk/internal/queue"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func newServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	return db
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, event := range p.events {
		out = append(out, event.Type)
	}
	return out
}

type recordingQueue struct {
	orderEmails  []queue.OrderStatusEmailPayload
	vendorEmails []queue.VendorReviewEmailPayload
}

func (q *recordingQueue) Enabled() bool { return true }

func (q *recordingQueue) EnqueueOrderStatusEmail(payload queue.OrderStatusEmailPayload, _ ...asynq.Option) error {
	q.orderEmails = append(q.orderEmails, payload)
	return nil
}

func (q *recordingQueue) EnqueueVendorReviewEmail(payload queue.VendorReviewEmailPayload, _ ...asynq.Option) error {
	q.vendorEmails = append(q.vendorEmails, payload)
	return nil
}

func uintPtr(v uint) *uint { return &v }
