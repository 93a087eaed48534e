package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page       int
	PageSize   int
	CategoryID uint
	Search     string
	OrderBy    string
}

// BlogListFilter 查询博客列表的过滤条件
type BlogListFilter struct {
	Page        int
	PageSize    int
	Search      string
	IsPublished *bool
	OrderBy     string
}

// FAQListFilter 查询 FAQ 列表的过滤条件
type FAQListFilter struct {
	Page     int
	PageSize int
	Search   string
	Category string
	IsActive *bool
	OrderBy  string
}

// ReviewListFilter 查询评价列表的过滤条件
type ReviewListFilter struct {
	Page      int
	PageSize  int
	ProductID uint
	IsHidden  *bool
	Search    string
	OrderBy   string
}

// EnquiryListFilter 查询询价列表的过滤条件
type EnquiryListFilter struct {
	Page     int
	PageSize int
	Status   string
	Search   string
	OrderBy  string
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	Status      string
	Search      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	OrderBy     string
}

// VendorListFilter 查询供应商列表的过滤条件
type VendorListFilter struct {
	Page         int
	PageSize     int
	VendorStatus string
	IsVerified   *bool
	Search       string
	OrderBy      string
}

// LoginLogListFilter 查询登录日志的过滤条件
type LoginLogListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Email       string
	Status      string
	ClientIP    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// RPCAuditListFilter 查询 doAll 审计日志的过滤条件
type RPCAuditListFilter struct {
	Page     int
	PageSize int
	ActorID  uint
	Target   string
	Action   string
	Allowed  *bool
}
