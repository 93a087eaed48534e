package service

import (
	"errors"
	"testing"

	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/models"
	"github.com/gemdesk/internal/repository"
)

func createTestOrder(t *testing.T, svcRepo repository.OrderRepository, orderNo, email, status string) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:       orderNo,
		CustomerName:  "Asha",
		CustomerEmail: email,
		TotalAmount:   models.MustMoney("12500.00"),
		Status:        status,
	}
	if err := svcRepo.Create(order); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{constants.OrderStatusPending, constants.OrderStatusProcessing, true},
		{constants.OrderStatusPending, constants.OrderStatusCancelled, true},
		{constants.OrderStatusProcessing, constants.OrderStatusShipped, true},
		{constants.OrderStatusShipped, constants.OrderStatusDelivered, true},
		{constants.OrderStatusPending, constants.OrderStatusDelivered, false},
		{constants.OrderStatusShipped, constants.OrderStatusCancelled, false},
		{constants.OrderStatusDelivered, constants.OrderStatusPending, false},
		{constants.OrderStatusCancelled, constants.OrderStatusProcessing, false},
	}
	for _, tc := range cases {
		if got := CanTransitionOrder(tc.from, tc.to); got != tc.want {
			t.Fatalf("%s -> %s want %v got %v", tc.from, tc.to, tc.want, got)
		}
	}
	if len(NextOrderStatuses(constants.OrderStatusDelivered)) != 0 {
		t.Fatalf("delivered is terminal")
	}
}

func TestOrderUpdateStatusEnqueuesEmail(t *testing.T) {
	db := newServiceTestDB(t)
	repo := repository.NewOrderRepository(db)
	queueClient := &recordingQueue{}
	svc := NewOrderService(repo, queueClient)

	order := createTestOrder(t, repo, "GD-1001", "asha@example.com", constants.OrderStatusPending)
	updated, err := svc.UpdateStatus(order.ID, " Processing ")
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.Status != constants.OrderStatusProcessing {
		t.Fatalf("status want processing got %s", updated.Status)
	}
	if len(queueClient.orderEmails) != 1 || queueClient.orderEmails[0].OrderID != order.ID {
		t.Fatalf("expected one email task, got %+v", queueClient.orderEmails)
	}

	if _, err := svc.UpdateStatus(order.ID, constants.OrderStatusDelivered); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("processing -> delivered should fail, got %v", err)
	}
	if _, err := svc.UpdateStatus(order.ID, "lost"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("unknown status should fail, got %v", err)
	}
	if _, err := svc.UpdateStatus(9999, constants.OrderStatusShipped); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing order should fail, got %v", err)
	}
	if len(queueClient.orderEmails) != 1 {
		t.Fatalf("failed transitions must not enqueue email")
	}
}

func TestOrderUpdateStatusWithoutEmailSkipsQueue(t *testing.T) {
	db := newServiceTestDB(t)
	repo := repository.NewOrderRepository(db)
	queueClient := &recordingQueue{}
	svc := NewOrderService(repo, queueClient)

	order := createTestOrder(t, repo, "GD-1002", "", constants.OrderStatusPending)
	if _, err := svc.UpdateStatus(order.ID, constants.OrderStatusCancelled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if len(queueClient.orderEmails) != 0 {
		t.Fatalf("orders without email must not enqueue")
	}

	counts, err := svc.CountByStatus()
	if err != nil {
		t.Fatalf("count by status failed: %v", err)
	}
	if counts[constants.OrderStatusCancelled] != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}
