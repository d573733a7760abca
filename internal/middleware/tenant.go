package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tenbooks/tenbooks_app/internal/apperrors"
	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	portssvc "github.com/tenbooks/tenbooks_app/internal/core/ports/services"
)

const tenantKey = contextKey("tenant")

// TenantHeader is the inbound header carrying the tenant identifier when no
// subdomain is available.
const TenantHeader = "X-Tenant"

// TenantResolver resolves the inbound tenant identifier (X-Tenant header,
// falling back to the first subdomain label) through the tenant service and
// stores the resolved tenant in the request context. Requests against
// unknown or suspended tenants never reach a handler. The resolved tenant is
// passed explicitly to every service call; nothing downstream consults
// global state.
func TenantResolver(tenantSvc portssvc.TenantSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		identifier := c.GetHeader(TenantHeader)
		if identifier == "" {
			if host := strings.Split(c.Request.Host, ":")[0]; strings.Count(host, ".") >= 2 {
				identifier = strings.SplitN(host, ".", 2)[0]
			}
		}
		if identifier == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing tenant identifier"})
			return
		}

		tenant, err := tenantSvc.ResolveTenant(c.Request.Context(), identifier)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrTenantSuspended):
				logger.Warn("Request against suspended tenant", slog.String("tenant", identifier))
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "tenant is suspended"})
			case errors.Is(err, apperrors.ErrTenantNotFound):
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
			default:
				logger.Error("Tenant resolution failed", slog.String("tenant", identifier), slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve tenant"})
			}
			return
		}

		ctx := context.WithValue(c.Request.Context(), tenantKey, tenant)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetTenantFromContext retrieves the resolved tenant from the request
// context. The boolean is false when the resolver did not run.
func GetTenantFromContext(c *gin.Context) (*domain.Tenant, bool) {
	tenant, ok := c.Request.Context().Value(tenantKey).(*domain.Tenant)
	return tenant, ok
}
