package handlers

import (
	"net/http"

	"github.com/SscSPs/business_tracker/cmd/docs"
	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
	"github.com/SscSPs/business_tracker/internal/middleware"
	"github.com/SscSPs/business_tracker/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// A nil loginLimiter disables login rate limiting.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	loginLimiter *limiter.Limiter,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	public := r.Group("/api/v1")
	registerAuthRoutes(public, services.Access, loginLimiter)
	registerCurrencyRoutes(public, services.Currency)

	setupAPIV1Routes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the authenticated /api/v1 group. Every route below it
// carries a session resolved against the active business.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1",
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.SessionMiddleware(services.Business),
	)

	loc := cfg.Timezone

	registerUserRoutes(v1, services.Access)
	registerBusinessRoutes(v1, services.Business)
	registerAccountRoutes(v1, services.Account, services.Business)
	registerCatalogRoutes(v1, services.Catalog)
	registerTransactionRoutes(v1, services.Transaction, loc)
	registerExportRoutes(v1, services.CSV, services.Report, services.Access, loc)
	registerBackupRoutes(v1, services.Backup, services.Access)
	registerShopRoutes(v1, services.Employee, services.Part, services.Access)
	registerActivityRoutes(v1, services.Activity)
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
