package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"rental-pos/internal/domain/user"
	"rental-pos/internal/handler/api"
	"rental-pos/internal/handler/middleware"
	"rental-pos/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, authHandler *api.AuthHandler, catalogHandler *api.CatalogHandler, sessionHandler *api.SessionHandler, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, catalogHandler, sessionHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, authHandler *api.AuthHandler, catalogHandler *api.CatalogHandler, sessionHandler *api.SessionHandler, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: authHandler.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		catalog := apiGroup.Group("/catalog")
		catalog.Use(authMiddleware.RequireAuth())
		{
			addRoutes(catalog, []route{
				{Method: http.MethodGet, Path: "/zones", Handler: catalogHandler.ListZones},
				{Method: http.MethodGet, Path: "/products", Handler: catalogHandler.ListProducts},
			})

			adminOnly := []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleAdmin)}
			addRoutes(catalog, []route{
				{Method: http.MethodPost, Path: "/zones", Handler: catalogHandler.CreateZone, Mw: adminOnly},
				{Method: http.MethodPost, Path: "/zones/:zoneKey/items", Handler: catalogHandler.CreateItem, Mw: adminOnly},
				{Method: http.MethodPatch, Path: "/zones/:zoneKey/items/:id", Handler: catalogHandler.UpdateItem, Mw: adminOnly},
				{Method: http.MethodDelete, Path: "/zones/:zoneKey/items/:id", Handler: catalogHandler.DeleteItem, Mw: adminOnly},
				{Method: http.MethodPost, Path: "/products", Handler: catalogHandler.CreateProduct, Mw: adminOnly},
				{Method: http.MethodPatch, Path: "/products/:id", Handler: catalogHandler.UpdateProduct, Mw: adminOnly},
				{Method: http.MethodDelete, Path: "/products/:id", Handler: catalogHandler.DeleteProduct, Mw: adminOnly},
			})
		}

		sessions := apiGroup.Group("/sessions")
		sessions.Use(authMiddleware.RequireAuth())
		{
			addRoutes(sessions, []route{
				{Method: http.MethodGet, Path: "", Handler: sessionHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: sessionHandler.Get},
			})

			operatorOnly := []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleOperator)}
			addRoutes(sessions, []route{
				{Method: http.MethodPost, Path: "", Handler: sessionHandler.Start, Mw: operatorOnly},
				{Method: http.MethodPatch, Path: "/:id", Handler: sessionHandler.Update, Mw: operatorOnly},
				{Method: http.MethodPost, Path: "/:id/rate", Handler: sessionHandler.OverrideRate, Mw: operatorOnly},
				{Method: http.MethodPost, Path: "/:id/charges", Handler: sessionHandler.AddCharge, Mw: operatorOnly},
				{Method: http.MethodDelete, Path: "/:id/charges/:index", Handler: sessionHandler.RemoveCharge, Mw: operatorOnly},
				{Method: http.MethodPost, Path: "/:id/finalize", Handler: sessionHandler.Finalize, Mw: operatorOnly},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
