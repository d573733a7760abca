package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tenbooks/tenbooks_app/internal/apperrors"
	portssvc "github.com/tenbooks/tenbooks_app/internal/core/ports/services"
	"github.com/tenbooks/tenbooks_app/internal/dto"
	"github.com/tenbooks/tenbooks_app/internal/middleware"
)

// tenantHandler handles tenant provisioning and lifecycle requests. These
// routes are administrative: they run outside the tenant resolver because
// they operate on tenants themselves.
type tenantHandler struct {
	tenantService portssvc.TenantSvcFacade
}

func newTenantHandler(ts portssvc.TenantSvcFacade) *tenantHandler {
	return &tenantHandler{tenantService: ts}
}

func registerTenantRoutes(rg *gin.RouterGroup, tenantService portssvc.TenantSvcFacade) {
	h := newTenantHandler(tenantService)

	tenants := rg.Group("/tenants")
	{
		tenants.POST("", h.createTenant)
		tenants.POST("/:tenantID/suspend", h.suspendTenant)
		tenants.POST("/:tenantID/activate", h.activateTenant)
	}
}

func (h *tenantHandler) createTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTenant", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), req, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "tenant slug already exists"})
			return
		}
		logger.Error("Failed to create tenant", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tenant"})
		return
	}

	logger.Info("Tenant provisioned", slog.String("tenant_id", tenant.TenantID), slog.String("slug", tenant.Slug))
	c.JSON(http.StatusCreated, dto.ToTenantResponse(tenant))
}

func (h *tenantHandler) suspendTenant(c *gin.Context) {
	h.setStatus(c, h.tenantService.SuspendTenant)
}

func (h *tenantHandler) activateTenant(c *gin.Context) {
	h.setStatus(c, h.tenantService.ActivateTenant)
}

func (h *tenantHandler) setStatus(c *gin.Context, op func(ctx context.Context, tenantID string, actor string) error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	actor := middleware.GetActorFromContext(c)

	if err := op(c.Request.Context(), tenantID, actor); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
			return
		}
		logger.Error("Failed to update tenant status", slog.String("tenant_id", tenantID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tenant status"})
		return
	}
	c.Status(http.StatusNoContent)
}
