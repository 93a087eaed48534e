package router

import (
	"net/http"

	"github.com/gemdesk/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

var (
	defaultCORSMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	defaultCORSHeaders = []string{
		"Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "Authorization",
		"Cache-Control", "X-Requested-With", requestIDHeader, "X-Locale",
	}
)

func orDefault(values, fallback []string) []string {
	if len(values) == 0 {
		return fallback
	}
	return values
}

// CORSMiddleware 预检请求直接以 204 结束，不进入后续中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	handler := cors.New(cors.Options{
		AllowedOrigins:       orDefault(cfg.AllowedOrigins, []string{"*"}),
		AllowedMethods:       orDefault(cfg.AllowedMethods, defaultCORSMethods),
		AllowedHeaders:       orDefault(cfg.AllowedHeaders, defaultCORSHeaders),
		ExposedHeaders:       []string{requestIDHeader, "Content-Disposition"},
		AllowCredentials:     cfg.AllowCredentials,
		MaxAge:               cfg.MaxAge,
		OptionsSuccessStatus: http.StatusNoContent,
	})
	return func(c *gin.Context) {
		handler.HandlerFunc(c.Writer, c.Request)
		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			c.Abort()
			return
		}
		c.Next()
	}
}
