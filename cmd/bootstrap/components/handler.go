package components

import (
	"rental-pos/internal/handler"
	"rental-pos/internal/handler/api"
	"rental-pos/internal/handler/middleware"
	"rental-pos/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(cfg config.Config) config.CookieConfig { return cfg.Cookie },
		api.NewAuthHandler,
		api.NewCatalogHandler,
		api.NewSessionHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
