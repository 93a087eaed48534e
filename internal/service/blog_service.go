package service

import (
	"strings"
	"time"

	"github.com/gemdesk/internal/models"
	"github.com/gemdesk/internal/repository"

	"gorm.io/datatypes"
)

// BlogService 博客业务服务
type BlogService struct {
	repo repository.BlogRepository
}

// NewBlogService 创建博客服务
func NewBlogService(repo repository.BlogRepository) *BlogService {
	return &BlogService{repo: repo}
}

// BlogInput 创建/更新博客输入
type BlogInput struct {
	Title       string
	Excerpt     string
	Content     string
	CoverImage  string
	Author      string
	Tags        []string
	IsPublished bool
}

// List 博客列表
func (s *BlogService) List(filter repository.BlogListFilter) ([]models.Blog, int64, error) {
	return s.repo.List(filter)
}

// Get 博客详情
func (s *BlogService) Get(id uint) (*models.Blog, error) {
	blog, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, ErrNotFound
	}
	return blog, nil
}

// Create 创建博客，slug 由标题生成
func (s *BlogService) Create(input BlogInput) (*models.Blog, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrBlogTitleRequired
	}
	slug := Slugify(title)
	if err := s.ensureSlugAvailable(slug, nil); err != nil {
		return nil, err
	}
	blog := &models.Blog{Title: title, Slug: slug}
	applyBlogInput(blog, input, time.Now())
	if err := s.repo.Create(blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// Update 更新博客
func (s *BlogService) Update(id uint, input BlogInput) (*models.Blog, error) {
	blog, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrBlogTitleRequired
	}
	slug := Slugify(title)
	if slug != blog.Slug {
		if err := s.ensureSlugAvailable(slug, &id); err != nil {
			return nil, err
		}
	}
	blog.Title = title
	blog.Slug = slug
	applyBlogInput(blog, input, time.Now())
	if err := s.repo.Update(blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// SetPublished 切换发布状态
func (s *BlogService) SetPublished(id uint, published bool) (*models.Blog, error) {
	blog, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	setBlogPublished(blog, published, time.Now())
	if err := s.repo.Update(blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// Delete 软删除博客
func (s *BlogService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.repo.SoftDelete(id)
}

func (s *BlogService) ensureSlugAvailable(slug string, excludeID *uint) error {
	if slug == "" {
		return ErrBlogTitleRequired
	}
	count, err := s.repo.CountBySlug(slug, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugExists
	}
	return nil
}

func applyBlogInput(blog *models.Blog, input BlogInput, now time.Time) {
	blog.Excerpt = strings.TrimSpace(input.Excerpt)
	blog.Content = input.Content
	blog.CoverImage = strings.TrimSpace(input.CoverImage)
	blog.Author = strings.TrimSpace(input.Author)
	blog.Tags = datatypes.JSONSlice[string](normalizeStringList(input.Tags))
	setBlogPublished(blog, input.IsPublished, now)
}

// 首次发布记录 published_at，撤回时清空
func setBlogPublished(blog *models.Blog, published bool, now time.Time) {
	if published && blog.PublishedAt == nil {
		blog.PublishedAt = &now
	}
	if !published {
		blog.PublishedAt = nil
	}
	blog.IsPublished = published
}
