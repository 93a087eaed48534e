package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/models"
	"github.com/gemdesk/internal/repository"
)

func newVendorServiceForTest(t *testing.T) (*VendorService, repository.UserRepository, *recordingQueue, *recordingPublisher) {
	t.Helper()
	db := newServiceTestDB(t)
	repo := repository.NewUserRepository(db)
	queueClient := &recordingQueue{}
	publisher := &recordingPublisher{}
	return NewVendorService(repo, queueClient, publisher), repo, queueClient, publisher
}

func createTestVendor(t *testing.T, repo repository.UserRepository, email string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		PasswordHash: "hash",
		UserType:     constants.UserTypeVendor,
		BusinessName: "Gems Co",
		VendorStatus: constants.VendorStatusPending,
	}
	if err := repo.Create(user); err != nil {
		t.Fatalf("create vendor failed: %v", err)
	}
	return user
}

func TestVendorApprove(t *testing.T) {
	svc, repo, queueClient, publisher := newVendorServiceForTest(t)
	vendor := createTestVendor(t, repo, "approve@vendor.test")

	approved, err := svc.Approve(context.Background(), 1, vendor.ID)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if !approved.IsVerified || approved.VendorStatus != constants.VendorStatusApproved {
		t.Fatalf("unexpected vendor state: %+v", approved)
	}
	stored, err := repo.GetByID(vendor.ID)
	if err != nil || stored == nil || !stored.IsVerified {
		t.Fatalf("approval should persist, got %+v err=%v", stored, err)
	}
	if len(queueClient.vendorEmails) != 1 || queueClient.vendorEmails[0].VendorStatus != constants.VendorStatusApproved {
		t.Fatalf("unexpected vendor emails: %+v", queueClient.vendorEmails)
	}
	if types := publisher.types(); len(types) != 1 || types[0] != constants.EventVendorReviewed {
		t.Fatalf("unexpected events: %v", types)
	}

	if _, err := svc.Reject(context.Background(), 1, vendor.ID, "late"); !errors.Is(err, ErrVendorNotPending) {
		t.Fatalf("reviewed vendor should not be reviewed again, got %v", err)
	}
}

func TestVendorReject(t *testing.T) {
	svc, repo, queueClient, _ := newVendorServiceForTest(t)
	vendor := createTestVendor(t, repo, "reject@vendor.test")

	if _, err := svc.Reject(context.Background(), 1, vendor.ID, "   "); !errors.Is(err, ErrRejectReasonRequired) {
		t.Fatalf("blank reason should fail, got %v", err)
	}
	rejected, err := svc.Reject(context.Background(), 1, vendor.ID, strings.Repeat("x", 600))
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.IsVerified || rejected.VendorStatus != constants.VendorStatusRejected {
		t.Fatalf("unexpected vendor state: %+v", rejected)
	}
	if len(rejected.RejectReason) != maxRejectReasonLength {
		t.Fatalf("reason should be truncated, got %d chars", len(rejected.RejectReason))
	}
	if len(queueClient.vendorEmails) != 1 || queueClient.vendorEmails[0].Reason == "" {
		t.Fatalf("reject email should carry reason: %+v", queueClient.vendorEmails)
	}
}

func TestVendorReviewOnlyVendors(t *testing.T) {
	svc, repo, _, _ := newVendorServiceForTest(t)
	admin := &models.User{Email: "root@gemdesk.test", PasswordHash: "hash", UserType: constants.UserTypeAdmin}
	if err := repo.Create(admin); err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	if _, err := svc.Approve(context.Background(), 1, admin.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("admins cannot be reviewed, got %v", err)
	}
	if _, err := svc.Approve(context.Background(), 1, 4242); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing vendor should fail, got %v", err)
	}
}
