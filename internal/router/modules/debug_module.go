package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/acara-auth/internal/interface/middleware"
)

// DebugModule exposes expvar counters (notifications_sent, notifications_failed, ...).
type DebugModule struct {
	Limiter *middleware.RateLimiter
}

func NewDebugModule(limiter *middleware.RateLimiter) *DebugModule {
	return &DebugModule{Limiter: limiter}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/debug/vars", m.Limiter.Limit("debug", 120, time.Minute), gin.WrapH(expvar.Handler()))
}
