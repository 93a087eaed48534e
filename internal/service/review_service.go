package service

import (
	"github.com/gemdesk/internal/models"
	"github.com/gemdesk/internal/repository"
)

// ReviewService 评价审核服务
type ReviewService struct {
	repo repository.ReviewRepository
}

// NewReviewService 创建评价服务
func NewReviewService(repo repository.ReviewRepository) *ReviewService {
	return &ReviewService{repo: repo}
}

// List 评价列表
func (s *ReviewService) List(filter repository.ReviewListFilter) ([]models.Review, int64, error) {
	return s.repo.List(filter)
}

// SetHidden 隐藏或恢复评价
func (s *ReviewService) SetHidden(id uint, hidden bool) (*models.Review, error) {
	review, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrNotFound
	}
	if err := s.repo.SetHidden(id, hidden); err != nil {
		return nil, err
	}
	review.IsHidden = hidden
	return review, nil
}

// Delete 物理删除评价
func (s *ReviewService) Delete(id uint) error {
	review, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}
