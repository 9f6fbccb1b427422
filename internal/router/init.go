package router

import (
	appuser "github.com/oksasatya/go-account-service/internal/application"
	"github.com/oksasatya/go-account-service/internal/container"
	"github.com/oksasatya/go-account-service/internal/infrastructure/cache"
	"github.com/oksasatya/go-account-service/internal/infrastructure/notify"
	"github.com/oksasatya/go-account-service/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-account-service/internal/interface/http"
	"github.com/oksasatya/go-account-service/internal/interface/middleware"
	"github.com/oksasatya/go-account-service/internal/router/modules"
)

type UserModuleDeps struct {
	Service *appuser.Service
	Gate    *appuser.Gate
	Handler *handlers.UserHandler
}

func buildUserDeps(c *container.Container) UserModuleDeps {
	cfg := c.Config
	service := appuser.NewService(c.Users, c.JWT, c.Hasher, c.Logger)

	var identityCache appuser.IdentityCache
	if c.Redis != nil {
		identityCache = cache.NewIdentityCache(c.Redis, cfg.IdentityCacheTTL)
	}
	service.Cache = identityCache
	if c.ES != nil {
		service.Index = search.NewUserIndex(c.ES, cfg.ESUsersIndex)
	}
	if c.Rabbit != nil && cfg.MailSendEnabled {
		service.Notifier = notify.NewEmailNotifier(c.Rabbit, cfg.AppName, cfg.CompanyName, cfg.SupportURL)
	}

	return UserModuleDeps{
		Service: service,
		Gate:    appuser.NewGate(c.JWT, c.Users, identityCache, c.Logger),
		Handler: handlers.NewUserHandler(service, c.Logger),
	}
}

// InitModules wires all application modules and registers them with the router registry.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) UserModuleDeps {
	userDeps := buildUserDeps(c)
	r.Add(modules.NewUserModule(userDeps.Handler, userDeps.Gate))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}

	r.Engine.GET("/", handlers.Root)
	r.Engine.NoRoute(middleware.NotFound())
	return userDeps
}
