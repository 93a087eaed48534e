package configurator

import (
	"context"
	"net/http"

	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/rpcclient"
)

// RPCBackend 通过 doAll 与管理端接口实现 Backend
type RPCBackend struct {
	client *rpcclient.Client
}

// NewRPCBackend 创建 RPC 后端
func NewRPCBackend(client *rpcclient.Client) *RPCBackend {
	return &RPCBackend{client: client}
}

// ListCategories 按排序权重读取分类
func (b *RPCBackend) ListCategories(ctx context.Context) ([]Category, error) {
	result, err := b.client.DoAll(ctx, rpcclient.Params{
		Action:  constants.RPCActionGet,
		Table:   "categories",
		OrderBy: "sort_order DESC",
	})
	if err != nil {
		return nil, err
	}
	var rows []Category
	if err := result.Decode(&rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListStyles 读取分类款式
func (b *RPCBackend) ListStyles(ctx context.Context, categoryID uint) ([]Dimension, error) {
	return b.listDimensions(ctx, "category_styles", categoryID)
}

// ListMetals 读取分类金属/宝石
func (b *RPCBackend) ListMetals(ctx context.Context, categoryID uint) ([]Dimension, error) {
	return b.listDimensions(ctx, "category_metals", categoryID)
}

func (b *RPCBackend) listDimensions(ctx context.Context, table string, categoryID uint) ([]Dimension, error) {
	var rows []Dimension
	if err := b.client.Get(ctx, table, map[string]interface{}{"category_id": categoryID}, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// AttributeCatalog 读取全局属性目录
func (b *RPCBackend) AttributeCatalog(ctx context.Context) (*AttributeCatalog, error) {
	var catalog AttributeCatalog
	if err := b.client.Call(ctx, http.MethodGet, "/api/v1/admin/attributes", nil, &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// CreateProduct 商品与变体一次提交，由服务端在同一事务中写入
func (b *RPCBackend) CreateProduct(ctx context.Context, submission Submission) (uint, error) {
	var created struct {
		ID uint `json:"id"`
	}
	if err := b.client.Call(ctx, http.MethodPost, "/api/v1/admin/products", submission, &created); err != nil {
		return 0, err
	}
	return created.ID, nil
}
