package service

import (
	"strings"

	"github.com/gemdesk/internal/models"
	"github.com/gemdesk/internal/repository"
)

// FAQService FAQ 业务服务
type FAQService struct {
	repo repository.FAQRepository
}

// NewFAQService 创建 FAQ 服务
func NewFAQService(repo repository.FAQRepository) *FAQService {
	return &FAQService{repo: repo}
}

// FAQInput 创建/更新 FAQ 输入
type FAQInput struct {
	Question  string
	Answer    string
	Category  string
	SortOrder int
	IsActive  bool
}

// List FAQ 列表
func (s *FAQService) List(filter repository.FAQListFilter) ([]models.FAQ, int64, error) {
	return s.repo.List(filter)
}

// Create 创建 FAQ
func (s *FAQService) Create(input FAQInput) (*models.FAQ, error) {
	faq := &models.FAQ{}
	if err := applyFAQInput(faq, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(faq); err != nil {
		return nil, err
	}
	return faq, nil
}

// Update 更新 FAQ
func (s *FAQService) Update(id uint, input FAQInput) (*models.FAQ, error) {
	faq, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if faq == nil {
		return nil, ErrNotFound
	}
	if err := applyFAQInput(faq, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(faq); err != nil {
		return nil, err
	}
	return faq, nil
}

// Delete 软删除 FAQ
func (s *FAQService) Delete(id uint) error {
	faq, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if faq == nil {
		return ErrNotFound
	}
	return s.repo.SoftDelete(id)
}

func applyFAQInput(faq *models.FAQ, input FAQInput) error {
	question := strings.TrimSpace(input.Question)
	answer := strings.TrimSpace(input.Answer)
	if question == "" || answer == "" {
		return ErrFAQInvalid
	}
	faq.Question = question
	faq.Answer = answer
	faq.Category = strings.TrimSpace(input.Category)
	faq.SortOrder = input.SortOrder
	faq.IsActive = input.IsActive
	return nil
}
