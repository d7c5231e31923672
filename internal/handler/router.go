package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"couponbot/internal/handler/api"
	"couponbot/internal/handler/middleware"
	"couponbot/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	accountHandler *api.AccountHandler,
	orderHandler *api.OrderHandler,
	paymentHandler *api.PaymentHandler,
	merchantHandler *api.MerchantHandler,
	adminHandler *api.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
	merchantAuth *middleware.MerchantAuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, accountHandler, orderHandler, paymentHandler, merchantHandler, adminHandler, authMiddleware, merchantAuth)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	accountHandler *api.AccountHandler,
	orderHandler *api.OrderHandler,
	paymentHandler *api.PaymentHandler,
	merchantHandler *api.MerchantHandler,
	adminHandler *api.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
	merchantAuth *middleware.MerchantAuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Gateway-facing endpoints live outside /api: the hosted checkout page
	// and the post-payment callback.
	engine.GET("/checkout/:orderId", orderHandler.GetCheckout)
	engine.POST("/payment/callback", paymentHandler.Callback)

	apiGroup := engine.Group("/api")
	{
		accounts := apiGroup.Group("/accounts")
		{
			addRoutes(accounts, []route{
				{Method: http.MethodPost, Path: "", Handler: accountHandler.Register},
				{Method: http.MethodPut, Path: "/:externalId/email", Handler: accountHandler.SetEmail},
				{Method: http.MethodPost, Path: "/:externalId/awaiting-amount", Handler: accountHandler.BeginAmountEntry},
				{Method: http.MethodGet, Path: "/:externalId/orders", Handler: accountHandler.ListOrders},
			})
		}

		orders := apiGroup.Group("/orders")
		{
			addRoutes(orders, []route{
				{Method: http.MethodPost, Path: "", Handler: orderHandler.CreateOrder},
				{Method: http.MethodGet, Path: "/:id", Handler: orderHandler.GetOrder},
			})

			adminOnly := orders.Group("")
			adminOnly.Use(authMiddleware.RequireAdmin())
			addRoutes(adminOnly, []route{
				{Method: http.MethodPost, Path: "/:id/expire", Handler: orderHandler.Expire},
			})
		}

		merchants := apiGroup.Group("/merchant")
		merchants.Use(merchantAuth.RequireMerchant())
		{
			addRoutes(merchants, []route{
				{Method: http.MethodPost, Path: "/redeem", Handler: merchantHandler.Redeem},
			})
		}

		admin := apiGroup.Group("/admin")
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/login", Handler: adminHandler.Login},
			})

			adminRequired := admin.Group("")
			adminRequired.Use(authMiddleware.RequireAdmin())
			addRoutes(adminRequired, []route{
				{Method: http.MethodPost, Path: "/merchants", Handler: adminHandler.ProvisionMerchant},
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
