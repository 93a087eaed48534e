package service

import (
	"context"
	"strings"

	"github.com/gemdesk/internal/cache"
	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/events"
	"github.com/gemdesk/internal/logger"
	"github.com/gemdesk/internal/models"
	"github.com/gemdesk/internal/queue"
	"github.com/gemdesk/internal/repository"
)

const maxRejectReasonLength = 500

// VendorService 供应商审核服务
type VendorService struct {
	repo      repository.UserRepository
	queue     EmailTaskQueue
	publisher events.Publisher
}

// NewVendorService 创建供应商审核服务
func NewVendorService(repo repository.UserRepository, queueClient EmailTaskQueue, publisher events.Publisher) *VendorService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &VendorService{repo: repo, queue: queueClient, publisher: publisher}
}

// List 供应商列表
func (s *VendorService) List(filter repository.VendorListFilter) ([]models.User, int64, error) {
	return s.repo.ListVendors(filter)
}

// Approve 审核通过供应商
func (s *VendorService) Approve(ctx context.Context, actorID, vendorID uint) (*models.User, error) {
	return s.review(ctx, actorID, vendorID, constants.VendorStatusApproved, "")
}

// Reject 驳回供应商，必须填写原因
func (s *VendorService) Reject(ctx context.Context, actorID, vendorID uint, reason string) (*models.User, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrRejectReasonRequired
	}
	if len(reason) > maxRejectReasonLength {
		reason = reason[:maxRejectReasonLength]
	}
	return s.review(ctx, actorID, vendorID, constants.VendorStatusRejected, reason)
}

func (s *VendorService) review(ctx context.Context, actorID, vendorID uint, status, reason string) (*models.User, error) {
	user, err := s.repo.GetByID(vendorID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.UserType != constants.UserTypeVendor {
		return nil, ErrNotFound
	}
	if user.VendorStatus != constants.VendorStatusPending {
		return nil, ErrVendorNotPending
	}
	user.VendorStatus = status
	user.IsVerified = status == constants.VendorStatusApproved
	user.RejectReason = reason
	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	_ = cache.SetUserAuthState(ctx, cache.BuildUserAuthState(user))

	if s.queue != nil && s.queue.Enabled() {
		if err := s.queue.EnqueueVendorReviewEmail(queue.VendorReviewEmailPayload{
			UserID:       user.ID,
			VendorStatus: status,
			Reason:       reason,
		}); err != nil {
			logger.Warnw("vendor_review_email_enqueue_failed", "vendor_id", user.ID, "error", err)
		}
	}
	if err := s.publisher.Publish(ctx, events.Event{
		Type:     constants.EventVendorReviewed,
		Table:    "users",
		Action:   constants.RPCActionUpdate,
		EntityID: user.ID,
		ActorID:  actorID,
		Payload:  map[string]interface{}{"vendor_status": status},
	}); err != nil {
		logger.Warnw("vendor_review_event_publish_failed", "vendor_id", user.ID, "error", err)
	}
	logger.Infow("vendor_reviewed", "vendor_id", user.ID, "status", status, "actor_id", actorID)
	return user, nil
}
