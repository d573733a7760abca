package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/tenbooks/tenbooks_app/internal/core/ports/services"
	"github.com/tenbooks/tenbooks_app/internal/middleware"
	"github.com/tenbooks/tenbooks_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// using interfaces.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	r.GET("/healthz", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group. Tenant provisioning routes
// stay outside the tenant resolver; everything else requires a resolved
// tenant before a handler runs.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		rate = limiter.Rate{Period: time.Minute, Limit: 300}
	}
	limiterInstance := limiter.New(memory.NewStore(), rate)

	v1 := r.Group("/api/v1", middleware.RateLimit(limiterInstance), middleware.Metrics())

	registerTenantRoutes(v1, services.Tenant)

	scoped := v1.Group("", middleware.TenantResolver(services.Tenant))
	registerAccountRoutes(scoped, services.Account)
	RegisterPostingRoutes(scoped, services.Posting)
	registerProducerRoutes(scoped, services.Producer)
	registerReportingRoutes(scoped, services.Reporting)
	registerAssetRoutes(scoped, services.Depreciation)
	registerReconciliationRoutes(scoped, services.Reconciliation)
	registerDocumentRoutes(scoped, services.Document)
	registerUsageRoutes(scoped, services.Usage)
}
