package router

import (
	"github.com/oksasatya/acara-auth/internal/application"
	"github.com/oksasatya/acara-auth/internal/container"
	pginfra "github.com/oksasatya/acara-auth/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/acara-auth/internal/interface/http"
	"github.com/oksasatya/acara-auth/internal/interface/middleware"
	"github.com/oksasatya/acara-auth/internal/router/modules"
)

type AuthModuleDeps struct {
	Store   *application.UserStore
	Service *application.AuthService
	Handler *handlers.AuthHandler
}

func buildAuthDeps() AuthModuleDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	var notifier application.RegistrationNotifier
	if sender := container.GetMailSender(); sender != nil {
		notifier = application.NewMailNotifier(sender, cfg, logger)
	}
	store := application.NewUserStore(
		pginfra.NewUserRepository(container.GetPGPool()),
		container.GetCodec(),
		notifier,
		logger,
	)
	service := application.NewAuthService(store, container.GetTokens(), logger)
	handler := handlers.NewAuthHandler(service, logger, cfg.CookieDomain, cfg.CookieSecure)

	return AuthModuleDeps{Store: store, Service: service, Handler: handler}
}

// InitModules wires every module onto the registry and returns the auth
// dependencies so the caller can drain the user store on shutdown.
func InitModules(r *Registry) AuthModuleDeps {
	cfg := container.GetConfig()

	var allow middleware.AllowFunc
	if cfg.RateLimitAllowPrivate {
		allow = middleware.AllowPrivateIP()
	}
	limiter := middleware.NewRateLimiter(container.GetRedis(), cfg.AppName, allow, container.GetLogger())

	deps := buildAuthDeps()
	r.Add(modules.NewAuthModule(deps.Handler, container.GetTokens(), limiter, modules.AuthLimits{
		Window:   cfg.RateLimitWindow,
		Login:    cfg.RateLimitLogin,
		Register: cfg.RateLimitRegister,
	}))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(limiter))
	}
	return deps
}
