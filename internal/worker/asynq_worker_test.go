package worker

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/models"
	"github.com/gemdesk/internal/provider"
	"github.com/gemdesk/internal/queue"
	"github.com/gemdesk/internal/service"

	"github.com/hibiken/asynq"
)

func TestBuildOrderStatusEmailInputFallsBackToOrderStatus(t *testing.T) {
	order := &models.Order{
		OrderNo:      "GD-2001",
		CustomerName: "  Meera ",
		Status:       constants.OrderStatusShipped,
		TotalAmount:  models.MustMoney("1250.5"),
	}
	input := buildOrderStatusEmailInput(order, "  ")
	if input.Status != constants.OrderStatusShipped {
		t.Fatalf("status should fall back to order status, got %q", input.Status)
	}
	if input.CustomerName != "Meera" || input.Amount.String() != "1250.50" {
		t.Fatalf("unexpected input: %+v", input)
	}
	if got := buildOrderStatusEmailInput(nil, "shipped"); got.OrderNo != "" {
		t.Fatalf("nil order should produce empty input, got %+v", got)
	}
}

func TestBuildVendorReviewEmailInputUsesStoredReason(t *testing.T) {
	user := &models.User{
		Name:         "Ravi",
		BusinessName: "Ravi Gems",
		VendorStatus: constants.VendorStatusRejected,
		RejectReason: "GST mismatch",
	}
	input := buildVendorReviewEmailInput(user, queue.VendorReviewEmailPayload{UserID: 1})
	if input.VendorStatus != constants.VendorStatusRejected || input.Reason != "GST mismatch" {
		t.Fatalf("unexpected input: %+v", input)
	}
}

func TestIsPermanentEmailError(t *testing.T) {
	if !isPermanentEmailError(fmt.Errorf("send: %w", service.ErrEmailServiceDisabled)) {
		t.Fatalf("disabled email service should be permanent")
	}
	if isPermanentEmailError(errors.New("dial tcp timeout")) {
		t.Fatalf("network errors should be retried")
	}
}

func TestHandlersSkipInvalidPayload(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})

	task, err := queue.NewOrderStatusEmailTask(queue.OrderStatusEmailPayload{})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("zero order id should be skipped, got %v", err)
	}
	if err := consumer.handleVendorReviewEmail(context.Background(), asynq.NewTask(queue.TaskVendorReviewEmail, []byte("{"))); err == nil {
		t.Fatalf("malformed payload should fail")
	}
}
