package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/acara-auth/internal/interface/http"
	"github.com/oksasatya/acara-auth/internal/interface/middleware"
	"github.com/oksasatya/acara-auth/pkg/helpers"
)

// AuthLimits are per-IP request budgets for the public endpoints.
type AuthLimits struct {
	Window   time.Duration
	Login    int
	Register int
}

type AuthModule struct {
	Handler *handlers.AuthHandler
	Tokens  *helpers.TokenManager
	Limiter *middleware.RateLimiter
	Limits  AuthLimits
}

func NewAuthModule(h *handlers.AuthHandler, tokens *helpers.TokenManager, limiter *middleware.RateLimiter, limits AuthLimits) *AuthModule {
	return &AuthModule{Handler: h, Tokens: tokens, Limiter: limiter, Limits: limits}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")

	auth.POST("/register", m.Limiter.Limit("register", m.Limits.Register, m.Limits.Window), m.Handler.Register)
	auth.POST("/login", m.Limiter.Limit("login", m.Limits.Login, m.Limits.Window), m.Handler.Login)

	auth.GET("/me", middleware.Auth(m.Tokens), m.Handler.Me)
}
