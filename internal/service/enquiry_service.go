package service

import (
	"io"
	"strings"

	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/export"
	"github.com/gemdesk/internal/models"
	"github.com/gemdesk/internal/repository"
)

const exportPageSize = 1000

// EnquiryService 询价业务服务
type EnquiryService struct {
	repo repository.EnquiryRepository
}

// NewEnquiryService 创建询价服务
func NewEnquiryService(repo repository.EnquiryRepository) *EnquiryService {
	return &EnquiryService{repo: repo}
}

// List 询价列表
func (s *EnquiryService) List(filter repository.EnquiryListFilter) ([]models.Enquiry, int64, error) {
	return s.repo.List(filter)
}

// UpdateStatus 更新询价状态
func (s *EnquiryService) UpdateStatus(id uint, status string) (*models.Enquiry, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	switch status {
	case constants.EnquiryStatusNew, constants.EnquiryStatusContacted, constants.EnquiryStatusClosed:
	default:
		return nil, ErrEnquiryStatusInvalid
	}
	enquiry, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if enquiry == nil {
		return nil, ErrNotFound
	}
	if err := s.repo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	enquiry.Status = status
	return enquiry, nil
}

// Delete 软删除询价
func (s *EnquiryService) Delete(id uint) error {
	enquiry, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if enquiry == nil {
		return ErrNotFound
	}
	return s.repo.SoftDelete(id)
}

// Export 按筛选条件导出全部询价为 XLSX
func (s *EnquiryService) Export(w io.Writer, filter repository.EnquiryListFilter) error {
	all := make([]models.Enquiry, 0)
	filter.PageSize = exportPageSize
	for page := 1; ; page++ {
		filter.Page = page
		rows, total, err := s.repo.List(filter)
		if err != nil {
			return err
		}
		all = append(all, rows...)
		if len(rows) == 0 || int64(len(all)) >= total {
			break
		}
	}
	return export.WriteWorkbook(w, export.EnquiriesSheet(all))
}
