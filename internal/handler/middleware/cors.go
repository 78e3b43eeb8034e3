package middleware

import (
	"log/slog"

	"rental-pos/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware opens the API to the front-desk web clients. Credentials
// stay enabled because auth rides on cookies, which also rules out wildcard
// origins; the configured origin list is used as-is.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = cfg.AllowOrigins
	corsCfg.AllowMethods = cfg.AllowMethods
	corsCfg.AllowHeaders = cfg.AllowHeaders
	corsCfg.ExposeHeaders = cfg.ExposeHeaders
	corsCfg.AllowCredentials = cfg.AllowCredentials
	corsCfg.MaxAge = cfg.MaxAge
	slog.Info("cors configured", "allow_origins", cfg.AllowOrigins)
	return cors.New(corsCfg)
}
