package configurator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrNoCategory 未选择分类
var ErrNoCategory = errors.New("category not selected")

// Backend 配置器依赖的远端能力
type Backend interface {
	ListCategories(ctx context.Context) ([]Category, error)
	ListStyles(ctx context.Context, categoryID uint) ([]Dimension, error)
	ListMetals(ctx context.Context, categoryID uint) ([]Dimension, error)
	AttributeCatalog(ctx context.Context) (*AttributeCatalog, error)
	CreateProduct(ctx context.Context, submission Submission) (uint, error)
}

// Session 一次商品录入会话：当前分类、其维度与全局属性目录
type Session struct {
	backend Backend

	mu       sync.RWMutex
	category *Category
	styles   []Dimension
	metals   []Dimension
	catalog  *AttributeCatalog
}

// NewSession 创建会话
func NewSession(backend Backend) *Session {
	return &Session{backend: backend}
}

// Categories 列出可选分类
func (s *Session) Categories(ctx context.Context) ([]Category, error) {
	return s.backend.ListCategories(ctx)
}

// SelectCategory 并行加载款式、金属/宝石与属性目录，属性目录每个会话只加载一次
func (s *Session) SelectCategory(ctx context.Context, category Category) error {
	s.mu.RLock()
	catalog := s.catalog
	s.mu.RUnlock()

	var styles, metals []Dimension
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.backend.ListStyles(gctx, category.ID)
		if err != nil {
			return fmt.Errorf("load styles: %w", err)
		}
		styles = items
		return nil
	})
	g.Go(func() error {
		items, err := s.backend.ListMetals(gctx, category.ID)
		if err != nil {
			return fmt.Errorf("load metals: %w", err)
		}
		metals = items
		return nil
	})
	if catalog == nil {
		g.Go(func() error {
			loaded, err := s.backend.AttributeCatalog(gctx)
			if err != nil {
				return fmt.Errorf("load attribute catalog: %w", err)
			}
			catalog = loaded
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	selected := category
	s.category = &selected
	s.styles = styles
	s.metals = metals
	s.catalog = catalog
	return nil
}

// Category 当前分类
func (s *Session) Category() (Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.category == nil {
		return Category{}, false
	}
	return *s.category, true
}

// Styles 当前分类款式
func (s *Session) Styles() []Dimension {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.styles
}

// Metals 当前分类金属/宝石
func (s *Session) Metals() []Dimension {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metals
}

// Catalog 全局属性目录
func (s *Session) Catalog() *AttributeCatalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// NewDraft 基于当前分类创建草稿
func (s *Session) NewDraft() (*Draft, error) {
	category, ok := s.Category()
	if !ok {
		return nil, ErrNoCategory
	}
	return NewDraft(category.ID), nil
}

// Save 校验并提交草稿
func (s *Session) Save(ctx context.Context, draft *Draft) (uint, error) {
	return draft.Save(ctx, s.backend)
}
