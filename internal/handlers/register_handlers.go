package handlers

import (
	"github.com/acctflow/voucher_approval_app/cmd/docs"
	portssvc "github.com/acctflow/voucher_approval_app/internal/core/ports/services"
	"github.com/acctflow/voucher_approval_app/internal/middleware"
	"github.com/acctflow/voucher_approval_app/internal/utils/analytics"
	"github.com/acctflow/voucher_approval_app/pkg/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	limiterInstance *limiter.Limiter,
	posthogClient *analytics.PosthogClientWrapper,
) {
	r.Use(cors.Default())

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services, limiterInstance, posthogClient)

	// Swagger routes (conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	limiterInstance *limiter.Limiter,
	posthogClient *analytics.PosthogClientWrapper,
) {
	// Apply rate limiting, AuthMiddleware and analytics capture to the entire
	// v1 group; analytics runs last so it sees the authenticated actor.
	v1 := r.Group("/api/v1",
		middleware.RateLimit(limiterInstance),
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.PosthogMiddleware(posthogClient),
	)

	RegisterVoucherRoutes(v1, services.Voucher)
	RegisterPrefixRoutes(v1, services.Prefix)
}

// RegisterVoucherRoutes wires the voucher workflow endpoints.
func RegisterVoucherRoutes(rg *gin.RouterGroup, voucherService portssvc.VoucherSvcFacade) {
	h := newVoucherHandler(voucherService)

	vouchers := rg.Group("/vouchers")
	vouchers.POST("", h.createVoucher)
	vouchers.GET("", h.listVouchers)
	vouchers.GET("/:voucherID", h.getVoucher)
	vouchers.POST("/:voucherID/approve", h.approveVoucher)
	vouchers.POST("/:voucherID/decline", h.declineVoucher)
}

// RegisterPrefixRoutes wires the prefix management endpoints.
func RegisterPrefixRoutes(rg *gin.RouterGroup, prefixService portssvc.PrefixSvcFacade) {
	h := newPrefixHandler(prefixService)

	prefixes := rg.Group("/prefixes")
	prefixes.GET("", h.listPrefixes)
	prefixes.POST("", h.createPrefix)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
