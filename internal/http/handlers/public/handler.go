package public

import "github.com/gemdesk/internal/provider"

// Handler 登录、供应商注册与验证码，不经过后台鉴权
type Handler struct {
	*provider.Container
}

func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
