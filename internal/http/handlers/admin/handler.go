package admin

import "github.com/gemdesk/internal/provider"

// Handler /api/v1/admin、/doAll 与 /upload-images 共用，服务从容器取
type Handler struct {
	*provider.Container
}

func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
