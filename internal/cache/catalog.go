package cache

import (
	"context"
	"time"
)

const attributeCatalogKey = "catalog:attributes"

// RememberAttributeCatalog 读穿属性目录缓存，ttl 非正时取 10 分钟
func RememberAttributeCatalog[T any](ctx context.Context, ttl time.Duration, load func() (T, error)) (T, error) {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return Remember(ctx, attributeCatalogKey, ttl, load)
}

// InvalidateAttributeCatalog 属性选项变化后清除目录缓存
func InvalidateAttributeCatalog(ctx context.Context) error {
	return Del(ctx, attributeCatalogKey)
}
